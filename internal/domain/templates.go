package domain

// BatchTemplate is a named preset call list. Template calls carry ether
// amounts in their authored form and are parsed at submission time.
type BatchTemplate struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Calls       []CallInput `yaml:"calls" json:"calls"`
}
