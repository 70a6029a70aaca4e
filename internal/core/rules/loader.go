package rules

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// FromYAML decodes a RuleSet from YAML. Only the sections present in the
// document override the defaults, so a domain can extend the actor
// vocabulary without restating every other table.
func FromYAML(data []byte) (RuleSet, error) {
	rs := Default()
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RuleSet{}, errors.Wrap(err, "decoding rule set")
	}
	if err := rs.Validate(); err != nil {
		return RuleSet{}, errors.Wrap(err, "validating rule set")
	}
	return rs, nil
}

// ToYAML encodes a RuleSet, mainly so a domain can dump the defaults as a
// starting point for its own tables.
func ToYAML(rs RuleSet) ([]byte, error) {
	data, err := yaml.Marshal(rs)
	if err != nil {
		return nil, errors.Wrap(err, "encoding rule set")
	}
	return data, nil
}
