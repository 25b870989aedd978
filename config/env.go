package config

import (
	"os"
	"strings"
)

// Environment selects environment-specific behaviour such as .env loading
// and gin's release mode
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads ENV, with CI=true taking precedence
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	return ParseEnvironment(os.Getenv("ENV"))
}

// ParseEnvironment maps a name to an Environment; unknown names and "" are development
func ParseEnvironment(name string) Environment {
	switch Environment(strings.ToLower(strings.TrimSpace(name))) {
	case Production, "prod":
		return Production
	case Test:
		return Test
	case CI:
		return CI
	default:
		return Development
	}
}

func (e Environment) IsProduction() bool {
	return e == Production
}

// LoadsDotEnv reports whether a local .env file should be read
func (e Environment) LoadsDotEnv() bool {
	return e == Development
}
