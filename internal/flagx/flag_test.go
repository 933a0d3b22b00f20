package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			"separate_value",
			[]string{"-a", "http://localhost:8080", "-x", "noise"},
			[]string{"-a"},
			[]string{"-a", "http://localhost:8080"},
		},
		{
			"equals_form",
			[]string{"--config=portal.json", "-v"},
			[]string{"--config"},
			[]string{"--config=portal.json"},
		},
		{
			"mixed",
			[]string{"-c", "conf.json", "-t=5", "-z"},
			[]string{"-c", "-t"},
			[]string{"-c", "conf.json", "-t=5"},
		},
		{
			"nothing_allowed",
			[]string{"-a", "1"},
			nil,
			[]string{},
		},
		{
			"flag_without_value",
			[]string{"-a", "-b"},
			[]string{"-a"},
			[]string{"-a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}
