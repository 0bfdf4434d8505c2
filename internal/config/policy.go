package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/pensioncalc/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed default_policy.yaml
var defaultPolicyYAML []byte

// DefaultPolicyYAML returns the embedded policy document
func DefaultPolicyYAML() []byte {
	out := make([]byte, len(defaultPolicyYAML))
	copy(out, defaultPolicyYAML)
	return out
}

// LoadDefaultPolicy parses the embedded policy
func LoadDefaultPolicy() (domain.Policy, error) {
	return ParsePolicy(defaultPolicyYAML)
}

// LoadPolicy reads a policy file. An empty path selects the embedded policy.
// Keys missing from the file keep their default values.
func LoadPolicy(path string) (domain.Policy, error) {
	if path == "" {
		return LoadDefaultPolicy()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("failed to read policy %s: %w", path, err)
	}
	policy, err := ParsePolicy(data)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("policy %s: %w", path, err)
	}
	return policy, nil
}

// ParsePolicy decodes policy YAML over the built-in defaults and validates it.
// Keys present in the document win even when they hold a zero value; tables
// given in the document replace the defaults rather than merge with them.
func ParsePolicy(data []byte) (domain.Policy, error) {
	var keys map[string]yaml.Node
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return domain.Policy{}, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	policy := domain.DefaultPolicy()
	if _, ok := keys["payment_months"]; ok {
		policy.PaymentMonths = nil
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return domain.Policy{}, fmt.Errorf("failed to parse policy YAML: %w", err)
	}

	if err := policy.Validate(); err != nil {
		return domain.Policy{}, fmt.Errorf("policy validation failed: %w", err)
	}
	return policy, nil
}

// MarshalPolicy encodes a policy as YAML
func MarshalPolicy(p domain.Policy) ([]byte, error) {
	data, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode policy: %w", err)
	}
	return data, nil
}
