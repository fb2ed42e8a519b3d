// Package devices implements the connection handler collaborator (spec
// §4.6's DeviceHandler): a YAML-seeded list of known devices, a discovery
// pulse, and a connect surface, backing GetDeviceList/OnDeviceChosen.
package devices

import (
	"fmt"
	"os"
	"sync"

	"github.com/goccy/go-yaml"
	"go.uber.org/zap"
)

// Device describes one entry in the seed file.
type Device struct {
	Name string `yaml:"name"`
}

// seedFile is devices.yaml's top-level shape.
type seedFile struct {
	Devices []Device `yaml:"devices"`
}

// Registry is the in-memory known-device list, seeded once at startup and
// mutable afterward as devices are discovered or connected.
type Registry struct {
	log *zap.Logger

	mu      sync.Mutex
	devices map[string]struct{}
}

// Load reads devices.yaml at path and returns a seeded Registry. A missing
// file yields an empty registry rather than an error, since a fresh
// deployment may not have discovered anything yet.
func Load(path string, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Registry{log: log, devices: make(map[string]struct{})}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("devices: read %s: %w", path, err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("devices: parse %s: %w", path, err)
	}
	for _, d := range seed.Devices {
		if d.Name != "" {
			r.devices[d.Name] = struct{}{}
		}
	}
	return r, nil
}

// Discover implements core.DeviceHandler: a discovery pulse that, absent a
// real transport (e.g. Bluetooth/USB scan, out of scope here), simply
// returns the currently known device list.
func (r *Registry) Discover() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.devices))
	for name := range r.devices {
		names = append(names, name)
	}
	return names
}

// Connect implements core.DeviceHandler: accepts a connection to a
// friendly device name, registering it if not already known.
func (r *Registry) Connect(deviceName string) error {
	if deviceName == "" {
		return fmt.Errorf("devices: empty device name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.devices[deviceName] = struct{}{}
	r.log.Info("device connected", zap.String("device", deviceName))
	return nil
}
