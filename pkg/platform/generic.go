package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newGeneric builds the zero-rule fallback driver used when no
// platform-specific behavior is registered: two-space Cisco-style
// indentation, "no " negation, and every rule collection empty. Matches
// original_source/hier_config/platforms/generic/driver.py.
func newGeneric() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:       Generic,
		Indentation:    2,
		NegationPrefix: "no ",
	})
}
