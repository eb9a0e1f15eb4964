// Package catalog loads the static marketplace data: products, stores, the
// driver roster and canned chat texts.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	domainErrors "github.com/polkiloo/deliverypro/internal/domain/errors"
	"github.com/polkiloo/deliverypro/internal/domain/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// Request is a demo courier request preloaded for drivers.
type Request struct {
	ID       string
	Pickup   string
	Dropoff  string
	Customer string
	Distance decimal.Decimal
	Payment  decimal.Decimal
}

// Catalog is immutable after loading and safe for concurrent reads.
type Catalog struct {
	items     map[model.Category][]model.CatalogItem
	byID      map[string]model.CatalogItem
	stores    []model.Store
	drivers   []string
	greetings []string
	replies   []string
	requests  []Request
}

type seedItem struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price string `yaml:"price"`
	Image string `yaml:"image"`
}

type seedStore struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Address      string  `yaml:"address"`
	Distance     string  `yaml:"distance"`
	DeliveryTime string  `yaml:"delivery_time"`
	Rating       float64 `yaml:"rating"`
}

type seedRequest struct {
	ID       string `yaml:"id"`
	Pickup   string `yaml:"pickup"`
	Dropoff  string `yaml:"dropoff"`
	Customer string `yaml:"customer"`
	Distance string `yaml:"distance"`
	Payment  string `yaml:"payment"`
}

type seed struct {
	Items     map[string][]seedItem `yaml:"items"`
	Stores    []seedStore           `yaml:"stores"`
	Drivers   []string              `yaml:"drivers"`
	Greetings []string              `yaml:"greetings"`
	Replies   []string              `yaml:"replies"`
	Requests  []seedRequest         `yaml:"requests"`
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultSeed)
}

// Open loads the catalog from path, or the embedded one when path is empty.
func Open(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads a YAML catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var s seed
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		items:     make(map[model.Category][]model.CatalogItem),
		byID:      make(map[string]model.CatalogItem),
		drivers:   s.Drivers,
		greetings: s.Greetings,
		replies:   s.Replies,
	}

	for _, category := range model.Categories {
		for _, raw := range s.Items[string(category)] {
			price, err := decimal.NewFromString(raw.Price)
			if err != nil {
				return nil, fmt.Errorf("item %s: invalid price %q: %w", raw.ID, raw.Price, err)
			}
			if !price.IsPositive() {
				return nil, fmt.Errorf("item %s: price must be positive", raw.ID)
			}
			if _, dup := c.byID[raw.ID]; dup || raw.ID == "" {
				return nil, fmt.Errorf("item %q: duplicate or empty id", raw.ID)
			}
			it := model.CatalogItem{ID: raw.ID, Name: raw.Name, Price: price, Category: category, Image: raw.Image}
			c.items[category] = append(c.items[category], it)
			c.byID[it.ID] = it
		}
	}
	for name := range s.Items {
		if !model.Category(name).Valid() {
			return nil, fmt.Errorf("unknown category %q", name)
		}
	}

	for _, raw := range s.Stores {
		distance, err := decimal.NewFromString(raw.Distance)
		if err != nil {
			return nil, fmt.Errorf("store %s: invalid distance %q: %w", raw.ID, raw.Distance, err)
		}
		c.stores = append(c.stores, model.Store{
			ID:           raw.ID,
			Name:         raw.Name,
			Address:      raw.Address,
			Distance:     distance,
			DeliveryTime: raw.DeliveryTime,
			Rating:       raw.Rating,
		})
	}

	for _, raw := range s.Requests {
		distance, err := decimal.NewFromString(raw.Distance)
		if err != nil {
			return nil, fmt.Errorf("request %s: invalid distance %q: %w", raw.ID, raw.Distance, err)
		}
		payment, err := decimal.NewFromString(raw.Payment)
		if err != nil {
			return nil, fmt.Errorf("request %s: invalid payment %q: %w", raw.ID, raw.Payment, err)
		}
		c.requests = append(c.requests, Request{
			ID:       raw.ID,
			Pickup:   raw.Pickup,
			Dropoff:  raw.Dropoff,
			Customer: raw.Customer,
			Distance: distance,
			Payment:  payment,
		})
	}

	if len(c.drivers) == 0 {
		return nil, fmt.Errorf("catalog must list at least one driver")
	}
	if len(c.replies) == 0 {
		return nil, fmt.Errorf("catalog must list at least one chat reply")
	}

	return c, nil
}

// Items returns items of category, or all items when category is empty.
func (c *Catalog) Items(category model.Category) []model.CatalogItem {
	if category != "" {
		return append([]model.CatalogItem(nil), c.items[category]...)
	}
	var all []model.CatalogItem
	for _, cat := range model.Categories {
		all = append(all, c.items[cat]...)
	}
	return all
}

// Item looks an item up by id.
func (c *Catalog) Item(id string) (model.CatalogItem, error) {
	it, ok := c.byID[id]
	if !ok {
		return model.CatalogItem{}, domainErrors.ErrItemNotFound
	}
	return it, nil
}

// Stores returns the store list.
func (c *Catalog) Stores() []model.Store {
	return append([]model.Store(nil), c.stores...)
}

// Store looks a store up by id.
func (c *Catalog) Store(id string) (model.Store, error) {
	for _, s := range c.stores {
		if s.ID == id {
			return s, nil
		}
	}
	return model.Store{}, domainErrors.ErrStoreNotFound
}

// Drivers returns the roster used for simulated assignments.
func (c *Catalog) Drivers() []string {
	return append([]string(nil), c.drivers...)
}

// Greetings renders the opening chat messages of driver.
func (c *Catalog) Greetings(driver string) []string {
	out := make([]string, 0, len(c.greetings))
	for _, g := range c.greetings {
		if strings.Contains(g, "%s") {
			g = fmt.Sprintf(g, driver)
		}
		out = append(out, g)
	}
	return out
}

// Replies returns the canned driver replies.
func (c *Catalog) Replies() []string {
	return append([]string(nil), c.replies...)
}

// Requests returns the demo courier requests.
func (c *Catalog) Requests() []Request {
	return append([]Request(nil), c.requests...)
}
