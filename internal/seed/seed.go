package seed

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tcsurf/surfstore/internal/domain/catalog"
	"github.com/tcsurf/surfstore/internal/domain/customer"
	"github.com/tcsurf/surfstore/internal/infrastructure/memory"
)

// Load populates the catalog and customer stores with the demo storefront
// data: four product families, ten categories, twelve products, and eight
// customers.
func Load(ctx context.Context, store *memory.CatalogStore, customers *memory.CustomerRepository) error {
	surfboards := catalog.NewFamily("1", "Surfboards", "High-quality surfboards for all skill levels")
	wetsuits := catalog.NewFamily("2", "Wetsuits", "Premium wetsuits for all water conditions")
	accessories := catalog.NewFamily("3", "Surf Accessories", "Essential accessories for surfers")
	apparel := catalog.NewFamily("4", "Surf Apparel", "Stylish surf-inspired clothing")

	longboards := catalog.NewCategory("1", "Longboards", "Classic longboards for cruising", surfboards)
	shortboards := catalog.NewCategory("2", "Shortboards", "High-performance shortboards", surfboards)
	sups := catalog.NewCategory("3", "SUP Boards", "Stand-up paddleboards", surfboards)
	fullsuits := catalog.NewCategory("4", "Full Suits", "Full-body wetsuits", wetsuits)
	springsuits := catalog.NewCategory("5", "Spring Suits", "Short-sleeve wetsuits", wetsuits)
	leashes := catalog.NewCategory("6", "Leashes", "Surfboard leashes", accessories)
	wax := catalog.NewCategory("7", "Surf Wax", "High-quality surf wax", accessories)
	fins := catalog.NewCategory("8", "Fins", "Surfboard fins", accessories)
	tshirts := catalog.NewCategory("9", "T-Shirts", "Surf-themed t-shirts", apparel)
	boardshorts := catalog.NewCategory("10", "Boardshorts", "High-performance boardshorts", apparel)

	for _, f := range []*catalog.Family{surfboards, wetsuits, accessories, apparel} {
		store.AddFamily(f)
	}
	for _, c := range []*catalog.Category{longboards, shortboards, sups, fullsuits, springsuits, leashes, wax, fins, tshirts, boardshorts} {
		store.AddCategory(c)
	}

	type board struct {
		id, name, desc, price string
		stock                 int
		category              string
		spec                  catalog.BoardSpec
	}
	for _, b := range []board{
		{"1", `9'6" Classic Longboard`, "Perfect for beginners and cruising", "749.99", 5, longboards.ID,
			catalog.BoardSpec{Length: `9'6"`, Type: "longboard", FinSetup: "single fin"}},
		{"2", `8'6" Performance Longboard`, "High-performance longboard for experienced surfers", "1099.99", 3, longboards.ID,
			catalog.BoardSpec{Length: `8'6"`, Type: "longboard", FinSetup: "2+1 fin setup"}},
		{"3", `6'2" Performance Shortboard`, "Competition-level shortboard", "629.99", 8, shortboards.ID,
			catalog.BoardSpec{Length: `6'2"`, Type: "shortboard", FinSetup: "thruster"}},
		{"4", `5'10" Grom Shortboard`, "Perfect shortboard for younger surfers", "499.99", 6, shortboards.ID,
			catalog.BoardSpec{Length: `5'10"`, Type: "shortboard", FinSetup: "thruster"}},
		{"5", `10'6" All-Around SUP`, "Versatile stand-up paddleboard", "899.99", 4, sups.ID,
			catalog.BoardSpec{Length: `10'6"`, Type: "SUP", FinSetup: "center fin"}},
	} {
		p, err := catalog.NewSurfboard(b.id, b.name, b.desc, decimal.RequireFromString(b.price), b.stock, b.category, b.spec)
		if err != nil {
			return err
		}
		store.AddProduct(p)
	}

	suits := []struct {
		id, name, desc, price string
		stock                 int
		category              string
		spec                  catalog.SuitSpec
	}{
		{"6", "4/3mm Full Wetsuit", "Premium neoprene full wetsuit", "249.99", 12, fullsuits.ID,
			catalog.SuitSpec{Thickness: "4/3mm", Type: "full suit", Material: "neoprene"}},
		{"7", "3/2mm Spring Suit", "Comfortable spring wetsuit", "159.99", 15, springsuits.ID,
			catalog.SuitSpec{Thickness: "3/2mm", Type: "spring suit", Material: "neoprene"}},
	}
	for _, s := range suits {
		p, err := catalog.NewWetsuit(s.id, s.name, s.desc, decimal.RequireFromString(s.price), s.stock, s.category, s.spec)
		if err != nil {
			return err
		}
		store.AddProduct(p)
	}

	extras := []struct {
		id, name, desc, price string
		stock                 int
		category              string
		spec                  catalog.AccessorySpec
	}{
		{"8", "Competition Leash 6ft", "Professional-grade surfboard leash", "34.99", 25, leashes.ID,
			catalog.AccessorySpec{Type: "leash", Compatibility: "All surfboards"}},
		{"9", "Premium Surf Wax", "High-performance surf wax", "3.99", 100, wax.ID,
			catalog.AccessorySpec{Type: "wax", Compatibility: "All surfboards"}},
		{"10", "Thruster Fin Set", "High-quality thruster fins", "74.99", 20, fins.ID,
			catalog.AccessorySpec{Type: "fins", Compatibility: "Shortboards"}},
		{"11", "Tropical Surf Tee", "100% cotton surf-themed t-shirt", "19.99", 30, tshirts.ID,
			catalog.AccessorySpec{Type: "tshirt"}},
		{"12", "Performance Boardshorts", "Quick-dry performance boardshorts", "64.99", 18, boardshorts.ID,
			catalog.AccessorySpec{Type: "boardshorts"}},
	}
	for _, a := range extras {
		p, err := catalog.NewAccessory(a.id, a.name, a.desc, decimal.RequireFromString(a.price), a.stock, a.category, a.spec)
		if err != nil {
			return err
		}
		store.AddProduct(p)
	}

	people := []struct{ id, first, last, email, phone, address string }{
		{"1", "Jake", "Morrison", "jake@email.com", "01234 567890", "123 Beach Road, Brighton, BN1 2AB"},
		{"2", "Sarah", "Chen", "sarah@email.com", "01234 567891", "456 Seafront, Bournemouth, BH2 5AA"},
		{"3", "Mike", "Rodriguez", "mike@email.com", "01234 567892", "789 Coastal Way, Newquay, TR7 1DB"},
		{"4", "Emma", "Johnson", "emma@email.com", "01234 567893", "321 Promenade, Croyde, EX33 1PA"},
		{"5", "Tom", "Williams", "tom@email.com", "01234 567894", "567 Coastal Drive, Polzeath, PL27 6ST"},
		{"6", "Lucy", "Davies", "lucy@email.com", "01234 567895", "89 Marine Parade, Saltburn, TS12 1HJ"},
		{"7", "Ben", "Taylor", "ben@email.com", "01234 567896", "45 Surf Street, Woolacombe, EX34 7BN"},
		{"8", "Amy", "Wilson", "amy@email.com", "01234 567897", "234 Bay View, Thurso, KW14 8XG"},
	}
	for _, p := range people {
		c, err := customer.New(p.id, p.first, p.last, p.email, p.phone, p.address)
		if err != nil {
			return err
		}
		if err := customers.Save(ctx, c); err != nil {
			return err
		}
	}

	return nil
}
