package usecase

import "github.com/justtry/crm/internal/entity"

// Actor identifies the authenticated user behind a request, as extracted from
// the JWT by the auth middleware.
type Actor struct {
	ID   string
	Name string
	Role entity.Role
}

type ChangeStatusInput struct {
	LeadID    string `json:"lead_id"`
	NewStatus string `json:"status"`
	Remarks   string `json:"remarks,omitempty"`
	Actor     Actor  `json:"-"`
}

// ChangeStatusOutput carries the updated aggregate plus soft warnings for
// side effects that failed after the status was already committed.
type ChangeStatusOutput struct {
	Lead     *entity.Lead `json:"lead"`
	Warnings []string     `json:"warnings,omitempty"`
}

type CreditCheckRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	PAN     string `json:"pan"`
	DOB     string `json:"dob"`
	Address string `json:"address"`
}

type CreditCheckInput struct {
	LeadID  string             `json:"lead_id"`
	Request CreditCheckRequest `json:"request"`
	Actor   Actor              `json:"-"`
}

type DisburseInput struct {
	LeadID string `json:"lead_id"`
	Actor  Actor  `json:"-"`
}

type DisburseOutput struct {
	Lead         *entity.Lead        `json:"lead"`
	Disbursement entity.Disbursement `json:"disbursement"`
}

type BankDetailsInput struct {
	LeadID            string `json:"lead_id"`
	AccountHolderName string `json:"accountHolderName"`
	AccountNumber     string `json:"accountNumber"`
	BankName          string `json:"bankName"`
	IFSCCode          string `json:"ifscCode"`
	BranchName        string `json:"branchName,omitempty"`
	AccountType       string `json:"accountType"`
	Actor             Actor  `json:"-"`
}

type CustomEmailInput struct {
	LeadID   string `json:"lead_id"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	Actor    Actor  `json:"-"`
}

type CreateLeadInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	ServiceType string  `json:"serviceType"`
	SubCategory string  `json:"subCategory"`
	Value       float64 `json:"value"`
	AssignedTo  string  `json:"assignedTo"`
	Actor       Actor   `json:"-"`
}

type AssignLeadInput struct {
	LeadID     string `json:"lead_id"`
	AssignedTo string `json:"assignedTo"`
	Actor      Actor  `json:"-"`
}
