// Package platform is the process-wide driver factory registry (§5,
// §9): one file per supported operating system, each a declarative rule
// table for pkg/hconfig, registered by name at package init time. The
// registry itself never mutates after init, matching spec.md §5's
// "process-wide, initialized-on-first-use, effectively immutable
// registry."
package platform

import (
	"fmt"
	"sort"
	"sync"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

// Name identifies a supported platform. String, not an enum, so callers
// (config files, CLI flags) can name a platform without importing this
// package's constants.
type Name = string

const (
	CiscoIOS        Name = "cisco_ios"
	CiscoIOSXR      Name = "cisco_xr"
	CiscoNXOS       Name = "cisco_nxos"
	AristaEOS       Name = "arista_eos"
	JuniperJunos    Name = "juniper_junos"
	VyOS            Name = "vyos"
	FortinetFortiOS Name = "fortinet_fortios"
	HPProcurve      Name = "hp_procurve"
	Generic         Name = "generic"
)

type factory func() (*hconfig.Driver, error)

var (
	registryMu sync.Mutex
	registry   = map[Name]factory{
		CiscoIOS:        newCiscoIOS,
		CiscoIOSXR:      newCiscoXR,
		CiscoNXOS:       newCiscoNXOS,
		AristaEOS:       newAristaEOS,
		JuniperJunos:    newJuniperJunos,
		VyOS:            newVyOS,
		FortinetFortiOS: newFortinetFortiOS,
		HPProcurve:      newHPProcurve,
		Generic:         newGeneric,
	}
	cache = map[Name]*hconfig.Driver{}
)

// Get returns the driver for platform, constructing and caching it on
// first use. It returns UnsupportedPlatformError for an unknown name.
func Get(platform Name) (*hconfig.Driver, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if d, ok := cache[platform]; ok {
		return d, nil
	}
	f, ok := registry[platform]
	if !ok {
		return nil, &hconfig.UnsupportedPlatformError{Platform: platform}
	}
	d, err := f()
	if err != nil {
		return nil, fmt.Errorf("building %s driver: %w", platform, err)
	}
	cache[platform] = d
	return d, nil
}

// Names returns every registered platform name, sorted.
func Names() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
