package health

// Service encapsulates health-related checks.
type Service struct {
	provider string
	model    string
}

// Status is the health payload.
type Status struct {
	OK       bool   `json:"ok"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// NewService constructs a new health service reporting the configured QA model.
func NewService(provider, model string) *Service {
	return &Service{provider: provider, model: model}
}

// Status returns a simple health payload.
func (s *Service) Status() Status {
	return Status{OK: true, Provider: s.provider, Model: s.model}
}
