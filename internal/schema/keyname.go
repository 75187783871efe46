package schema

import "strings"

// Acronyms rendered in caps when a key is turned into a display name.
var displayAcronyms = map[string]string{
	"acl":   "ACL",
	"bgp":   "BGP",
	"cvp":   "CVP",
	"dhcp":  "DHCP",
	"evpn":  "EVPN",
	"id":    "ID",
	"ip":    "IP",
	"ipv4":  "IPv4",
	"ipv6":  "IPv6",
	"lacp":  "LACP",
	"mac":   "MAC",
	"mlag":  "MLAG",
	"mtu":   "MTU",
	"ospf":  "OSPF",
	"ptp":   "PTP",
	"qos":   "QOS",
	"snmp":  "SNMP",
	"stp":   "STP",
	"vlan":  "VLAN",
	"vrf":   "VRF",
	"vxlan": "VXLAN",
}

// KeyToDisplayName turns a snake_case schema key into a human-readable
// title, keeping well-known networking acronyms in caps.
func KeyToDisplayName(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, word := range words {
		lower := strings.ToLower(word)
		if acronym, ok := displayAcronyms[lower]; ok {
			words[i] = acronym
			continue
		}
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + word[1:]
		}
	}
	return strings.Join(words, " ")
}
