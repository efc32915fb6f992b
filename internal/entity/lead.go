package entity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type ServiceType string

const (
	ServiceLoan       ServiceType = "Loan"
	ServiceInvestment ServiceType = "Investment"
	ServiceInsurance  ServiceType = "Insurance"
)

func (s ServiceType) Valid() bool {
	return s == ServiceLoan || s == ServiceInvestment || s == ServiceInsurance
}

// Pipeline vocabularies per service type. The UI renders these as dropdown
// options; the backend does NOT enforce membership (any non-empty status is
// accepted, corrections included).
var PipelineStatuses = map[ServiceType][]string{
	ServiceLoan:       {"New", "KYC Pending", "Documents Needed", "Eligibility Check", "Approved", "Rejected", "Disbursed"},
	ServiceInvestment: {"New", "Risk Profiling", "KYC Verification", "Investment Planning", "Portfolio Creation", "Activated", "Completed"},
	ServiceInsurance:  {"New", "KYC Pending", "Medical Check", "Underwriting", "Approved / Rejected", "Policy Issued", "Completed"},
}

var SubCategories = map[ServiceType][]string{
	ServiceLoan:       {"Personal Loan", "Business Loan", "Home Loan", "Vehicle Loan"},
	ServiceInvestment: {"SIP/Mutual Funds", "Stocks/Demat", "Fixed Deposits", "Bonds"},
	ServiceInsurance:  {"Health Insurance", "Life Insurance", "Vehicle Insurance", "Term Plans"},
}

// ApprovalStatusFor is the trigger table for outbound call/email automation:
// reaching this status fires the approval notifications for the lead.
func ApprovalStatusFor(s ServiceType) string {
	switch s {
	case ServiceLoan:
		return "Approved"
	case ServiceInvestment:
		return "Activated"
	case ServiceInsurance:
		return "Policy Issued"
	}
	return ""
}

const (
	StatusEligibilityCheck = "Eligibility Check"
	StatusDisbursed        = "Disbursed"
	StatusCustomEmailSent  = "Custom Email Sent"

	// SystemUserID marks history entries written by automation, not a person.
	SystemUserID = "system"
)

type Document struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type CibilData struct {
	Score            int    `json:"score"`
	RiskCategory     string `json:"riskCategory"`
	CreditReportDate string `json:"creditReportDate"`
	TotalAccounts    int    `json:"totalAccounts"`
	OverdueAccounts  int    `json:"overdueAccounts"`
	GeneratedAt      string `json:"generatedAt"`
	DataSource       string `json:"dataSource"`
	ConfidenceScore  int    `json:"confidenceScore"`
}

// HistoryEntry is the audit trail record. Immutable once appended.
type HistoryEntry struct {
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	UserID    string     `json:"user"`
	Remarks   string     `json:"remarks,omitempty"`
	CibilData *CibilData `json:"cibilData,omitempty"`
}

type BankDetails struct {
	AccountHolderName string     `json:"accountHolderName"`
	AccountNumber     string     `json:"accountNumber"`
	BankName          string     `json:"bankName"`
	IFSCCode          string     `json:"ifscCode"`
	BranchName        string     `json:"branchName,omitempty"`
	AccountType       string     `json:"accountType"` // savings, current
	VerifiedBy        string     `json:"verifiedBy,omitempty"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
}

func (b *BankDetails) Verified() bool {
	return b != nil && b.VerifiedBy != "" && b.VerifiedAt != nil
}

const (
	DisbursementInitiated  = "initiated"
	DisbursementProcessing = "processing" // declared for wire compatibility, never persisted
	DisbursementCompleted  = "completed"
	DisbursementFailed     = "failed"
)

type Disbursement struct {
	ID              string          `json:"id"`
	Amount          float64         `json:"amount"`
	ReferenceID     string          `json:"referenceId"`
	Status          string          `json:"status"`
	InitiatedBy     string          `json:"initiatedBy"`
	InitiatedAt     time.Time       `json:"initiatedAt"`
	CompletedAt     *time.Time      `json:"completedAt,omitempty"`
	FailureReason   string          `json:"failureReason,omitempty"`
	GatewayResponse json.RawMessage `json:"gatewayResponse,omitempty"`
}

// Lead is the central aggregate. History and disbursements are append-only;
// a save persists the whole aggregate in one write.
type Lead struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	ServiceType   ServiceType    `json:"serviceType"`
	SubCategory   string         `json:"subCategory"`
	Status        string         `json:"status"`
	Value         float64        `json:"value"`
	AssignedTo    string         `json:"assignedTo"`
	Documents     []Document     `json:"documents,omitempty"`
	History       []HistoryEntry `json:"history"`
	BankDetails   *BankDetails   `json:"bankDetails,omitempty"`
	Disbursements []Disbursement `json:"disbursements,omitempty"`
	Version       int64          `json:"version"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	GetByID(ctx context.Context, id string) (*Lead, error)
	Save(ctx context.Context, lead *Lead) error
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)
}

// LeadFilter narrows List by role visibility: sales see their own leads,
// back-office see their service types, admin sees everything.
type LeadFilter struct {
	AssignedTo   string
	ServiceTypes []ServiceType
}

func NewLead(name, email, phone string, serviceType ServiceType, subCategory string, value float64, assignedTo, createdBy string) (*Lead, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if !serviceType.Valid() {
		return nil, errors.New("invalid service type")
	}
	if value < 0 {
		return nil, errors.New("value must be non-negative")
	}

	now := time.Now()
	lead := &Lead{
		ID:          uuid.New().String(),
		Name:        name,
		Email:       email,
		Phone:       phone,
		ServiceType: serviceType,
		SubCategory: subCategory,
		Value:       value,
		AssignedTo:  assignedTo,
		CreatedAt:   now,
	}
	lead.ApplyStatus(HistoryEntry{Status: "New", Timestamp: now, UserID: createdBy, Remarks: "Lead created"})
	return lead, nil
}

// ApplyStatus appends the entry and sets Status from that same entry, so the
// stored status and the trail cannot diverge through this path.
func (l *Lead) ApplyStatus(entry HistoryEntry) {
	l.History = append(l.History, entry)
	l.Status = entry.Status
	l.UpdatedAt = entry.Timestamp
}

// AppendHistory records an audit entry without touching Status (credit checks,
// dispatch outcomes, custom emails).
func (l *Lead) AppendHistory(entry HistoryEntry) {
	l.History = append(l.History, entry)
	l.UpdatedAt = entry.Timestamp
}

// LatestCibil returns the most recent credit check recorded in the trail.
func (l *Lead) LatestCibil() *CibilData {
	for i := len(l.History) - 1; i >= 0; i-- {
		if l.History[i].CibilData != nil {
			return l.History[i].CibilData
		}
	}
	return nil
}

// EligibleForDisbursement gates the irreversible payout. At most one non-failed
// disbursement may ever exist per lead; retries are allowed only when every
// earlier attempt failed.
func (l *Lead) EligibleForDisbursement() bool {
	if l.ServiceType != ServiceLoan || l.Status != "Approved" {
		return false
	}
	if !l.BankDetails.Verified() {
		return false
	}
	for _, d := range l.Disbursements {
		if d.Status != DisbursementFailed {
			return false
		}
	}
	return true
}

func (l *Lead) AddDocument(doc Document) {
	l.Documents = append(l.Documents, doc)
	l.UpdatedAt = time.Now()
}

func (l *Lead) RemoveDocument(name string) bool {
	for i, d := range l.Documents {
		if d.Name == name {
			l.Documents = append(l.Documents[:i], l.Documents[i+1:]...)
			l.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// SetBankDetails replaces the lead's bank details. Any previous verification is
// dropped: edited details must be re-verified before money moves.
func (l *Lead) SetBankDetails(details BankDetails) {
	details.VerifiedBy = ""
	details.VerifiedAt = nil
	l.BankDetails = &details
	l.UpdatedAt = time.Now()
}

func (l *Lead) MarkBankDetailsVerified(verifiedBy string, at time.Time) error {
	if l.BankDetails == nil {
		return errors.New("no bank details to verify")
	}
	l.BankDetails.VerifiedBy = verifiedBy
	l.BankDetails.VerifiedAt = &at
	l.UpdatedAt = at
	return nil
}
