package service

import "github.com/foliolabs/folio/domain/taxonomy"

// DefaultTaxonomies returns the built-in taxonomy lists a fresh install
// starts with. Features and developers are populated organically by
// project writes.
func DefaultTaxonomies() map[taxonomy.Kind][]string {
	return map[taxonomy.Kind][]string{
		taxonomy.KindSource: {
			"Fiverr", "Upwork", "WhatsApp", "Wix Marketplace", "Email", "Outsourced", "Copied",
		},
		taxonomy.KindCategory: {
			"Healthcare", "E-commerce", "Real Estate", "Corporate", "Education", "Restaurant", "Portfolio", "Non-Profit",
		},
		taxonomy.KindPlatform: {
			"Wix Classic", "Wix Studio", "MERN", "WordPress", "Shopify", "Custom",
		},
		taxonomy.KindStatus: {
			"Pending", "In Progress", "Completed", "On Hold", "Cancelled",
		},
	}
}
