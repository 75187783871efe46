// Package inventory parses Ansible-style YAML inventories and derives the
// container topology used to provision the fabric on CloudVision.
package inventory

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RootContainer is the fixed root container on CloudVision. It must not
// change unless CloudVision changes it in the core.
const RootContainer = "Tenant"

// Group models one inventory group: its directly attached hosts, nested
// child groups, and group vars (opaque to this tool).
type Group struct {
	Hosts    map[string]map[string]any `yaml:"hosts,omitempty"`
	Children map[string]Group          `yaml:"children,omitempty"`
	Vars     map[string]any            `yaml:"vars,omitempty"`
}

// Inventory is the parsed top-level group mapping of an inventory file.
type Inventory struct {
	Groups map[string]Group
}

// Parse decodes inventory YAML.
func Parse(data []byte) (*Inventory, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("inventory: payload is empty")
	}
	var groups map[string]Group
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("inventory: decode: %w", err)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("inventory: no groups defined")
	}
	return &Inventory{Groups: groups}, nil
}

// Load reads and parses an inventory file from disk.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inventory: read %s: %w", path, err)
	}
	inv, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("inventory: %s: %w", path, err)
	}
	return inv, nil
}

// Devices returns the host names directly attached to the named group,
// wherever it sits in the hierarchy. A group that does not exist or has
// no hosts yields an empty list.
func (inv *Inventory) Devices(group string) []string {
	if inv == nil {
		return nil
	}
	var devices []string
	collectDevices(inv.Groups, group, &devices)
	sort.Strings(devices)
	return devices
}

func collectDevices(groups map[string]Group, target string, devices *[]string) {
	for name, grp := range groups {
		if name == target {
			for host := range grp.Hosts {
				*devices = append(*devices, host)
			}
		}
		if len(grp.Children) > 0 {
			collectDevices(grp.Children, target, devices)
		}
	}
}

// DevicesUnder returns every host attached to the named group or any of
// its descendants, deduplicated and sorted. This is the device batch for
// a run scoped to a fabric group.
func (inv *Inventory) DevicesUnder(group string) []string {
	if inv == nil {
		return nil
	}
	grp, ok := findGroup(inv.Groups, group)
	if !ok {
		return nil
	}
	seen := map[string]struct{}{}
	var walk func(Group)
	walk = func(g Group) {
		for host := range g.Hosts {
			seen[host] = struct{}{}
		}
		for _, child := range g.Children {
			walk(child)
		}
	}
	walk(grp)
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for host := range seen {
		out = append(out, host)
	}
	sort.Strings(out)
	return out
}

// AllDevices returns every host in the inventory, deduplicated and sorted.
func (inv *Inventory) AllDevices() []string {
	if inv == nil {
		return nil
	}
	seen := map[string]struct{}{}
	var walk func(map[string]Group)
	walk = func(groups map[string]Group) {
		for _, grp := range groups {
			for host := range grp.Hosts {
				seen[host] = struct{}{}
			}
			if len(grp.Children) > 0 {
				walk(grp.Children)
			}
		}
	}
	walk(inv.Groups)
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for host := range seen {
		out = append(out, host)
	}
	sort.Strings(out)
	return out
}

// HasGroup reports whether the named group exists anywhere in the tree.
func (inv *Inventory) HasGroup(name string) bool {
	if inv == nil {
		return false
	}
	_, ok := findGroup(inv.Groups, name)
	return ok
}

func findGroup(groups map[string]Group, target string) (Group, bool) {
	for name, grp := range groups {
		if name == target {
			return grp, true
		}
		if found, ok := findGroup(grp.Children, target); ok {
			return found, true
		}
	}
	return Group{}, false
}

// Container is one entry of the provisioning topology: its parent and,
// for leaf containers, the devices attached to it.
type Container struct {
	ParentContainer string   `json:"parent_container,omitempty" yaml:"parent_container,omitempty"`
	Devices         []string `json:"devices,omitempty" yaml:"devices,omitempty"`
}

// Topology maps container names to their provisioning entries.
type Topology map[string]Container

// Topology derives the container structure rooted at the named group. The
// root group hangs off the fixed CloudVision root container; leaf groups
// below it carry their device lists.
func (inv *Inventory) Topology(root string) (Topology, error) {
	if inv == nil {
		return nil, fmt.Errorf("inventory: not loaded")
	}
	rootGroup, ok := findGroup(inv.Groups, root)
	if !ok {
		return nil, fmt.Errorf("inventory: container root %s not found", root)
	}
	topology := Topology{
		root: {ParentContainer: RootContainer},
	}
	addChildren(topology, inv, root, rootGroup)
	return topology, nil
}

func addChildren(topology Topology, inv *Inventory, parent string, grp Group) {
	for name, child := range grp.Children {
		entry := Container{ParentContainer: parent}
		if len(child.Children) == 0 {
			entry.Devices = inv.Devices(name)
		}
		topology[name] = entry
		addChildren(topology, inv, name, child)
	}
}

// Containers returns the topology's container names sorted for stable
// output.
func (t Topology) Containers() []string {
	if len(t) == 0 {
		return nil
	}
	out := make([]string, 0, len(t))
	for name := range t {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
