package blandai

type PlaceCallInput struct {
	Phone       string
	Name        string
	ServiceType string
	Status      string
	LeadID      string
}

type PlaceCallOutput struct {
	Success bool   `json:"success"`
	CallID  string `json:"callId,omitempty"`
	Message string `json:"message,omitempty"`
}

type callRequest struct {
	PhoneNumber           string            `json:"phone_number"`
	Task                  string            `json:"task"`
	Voice                 string            `json:"voice"`
	WaitForGreeting       bool              `json:"wait_for_greeting"`
	Record                bool              `json:"record"`
	AnsweredByEnabled     bool              `json:"answered_by_enabled"`
	NoiseCancellation     bool              `json:"noise_cancellation"`
	InterruptionThreshold int               `json:"interruption_threshold"`
	BlockInterruptions    bool              `json:"block_interruptions"`
	MaxDuration           int               `json:"max_duration"`
	Model                 string            `json:"model"`
	Language              string            `json:"language"`
	BackgroundTrack       string            `json:"background_track"`
	Endpoint              string            `json:"endpoint"`
	VoicemailAction       string            `json:"voicemail_action"`
	JSONModeEnabled       bool              `json:"json_mode_enabled"`
	Metadata              map[string]string `json:"metadata"`
}

type callResponse struct {
	CallID string `json:"call_id"`
	ID     string `json:"id"`
}
