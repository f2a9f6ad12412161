package generation

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/firefly-engineering/genctl/internal/errors"
	"github.com/firefly-engineering/genctl/internal/logging"
	"github.com/firefly-engineering/genctl/internal/nix"
)

// DefaultAttr is the fallback attribute tried when no host-specific one exists.
const DefaultAttr = "default"

// bareAttrRegex matches attribute names Nix accepts without quoting.
var bareAttrRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_'-]*$`)

// Resolver chooses which flake attribute to build for this host.
type Resolver struct {
	Evaluator nix.Evaluator

	// BaseAttr is the attribute set holding the configurations, e.g. systemConfigs.
	BaseAttr string

	// Hostname returns the local host name.
	Hostname func() (string, error)
}

// NewResolver creates a Resolver.
func NewResolver(eval nix.Evaluator, baseAttr string, hostname func() (string, error)) *Resolver {
	return &Resolver{
		Evaluator: eval,
		BaseAttr:  baseAttr,
		Hostname:  hostname,
	}
}

// Candidates returns the attributes to probe, most specific first.
func (r *Resolver) Candidates() ([]string, error) {
	host, err := r.Hostname()
	if err != nil {
		return nil, fmt.Errorf("failed to determine hostname: %w", err)
	}

	fallback := r.BaseAttr + "." + DefaultAttr
	if host == "" {
		logging.Warn("empty hostname, only trying the default attribute")
		return []string{fallback}, nil
	}

	specific := r.BaseAttr + "." + attrName(host)
	if specific == fallback {
		return []string{fallback}, nil
	}
	return []string{specific, fallback}, nil
}

// Resolve probes the candidates in order and returns the first attribute
// that evaluates in flakeURI. Probing stops at the first success.
func (r *Resolver) Resolve(ctx context.Context, flakeURI string) (string, error) {
	candidates, err := r.Candidates()
	if err != nil {
		return "", err
	}

	for _, attr := range candidates {
		installable := nix.Installable(flakeURI, attr)
		logging.UserInfo("Trying flake attribute: %s...", installable)

		ok, err := r.Evaluator.Eval(ctx, installable)
		if err != nil {
			return "", err
		}
		if ok {
			logging.UserInfo("Success, using %s", installable)
			return attr, nil
		}
		logging.UserInfo("Attribute %s not found in flake.", installable)
	}

	return "", errors.TargetNotFound(flakeURI)
}

// attrName quotes name when it is not a bare Nix identifier,
// so that host names with dots stay a single attribute.
// nix splits the installable's attribute path on dots outside double
// quotes; it is not evaluated as a Nix expression.
func attrName(name string) string {
	if bareAttrRegex.MatchString(name) {
		return name
	}
	return strconv.Quote(name)
}
