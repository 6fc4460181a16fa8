// Package catalog holds the static list of restaurants the API knows about.
package catalog

import "strings"

type Category struct {
	Name        string
	Restaurants []string
}

var defaultTable = []Category{
	{Name: "Pizza", Restaurants: []string{"Dominos", "Pizza Hut", "Luigi's Pizzeria"}},
	{Name: "Burger", Restaurants: []string{"McDonald's", "Burger King", "Shake Shack"}},
	{Name: "Sushi", Restaurants: []string{"Nobu", "Sushi Samba", "Kura Sushi"}},
	{Name: "Pasta", Restaurants: []string{"Olive Garden", "Carrabba's", "Maggiano's"}},
	{Name: "Salad", Restaurants: []string{"Sweetgreen", "Chopt", "Saladworks"}},
	{Name: "Ice Cream", Restaurants: []string{"Baskin Robbins", "Ben & Jerry's", "Cold Stone Creamery"}},
}

var defaultCatalog = New(defaultTable)

// Catalog is immutable after New returns and safe for concurrent readers.
type Catalog struct {
	categories []Category
	// restaurant name -> first category listing it
	index map[string]string
}

func New(table []Category) *Catalog {
	c := &Catalog{
		categories: make([]Category, 0, len(table)),
		index:      make(map[string]string),
	}
	for _, cat := range table {
		names := make([]string, len(cat.Restaurants))
		copy(names, cat.Restaurants)
		c.categories = append(c.categories, Category{Name: cat.Name, Restaurants: names})

		for _, name := range names {
			if _, ok := c.index[name]; !ok {
				c.index[name] = cat.Name
			}
		}
	}
	return c
}

func Default() *Catalog {
	return defaultCatalog
}

func (c *Catalog) IsKnown(name string) bool {
	_, ok := c.index[name]
	return ok
}

func (c *Catalog) CategoryOf(name string) (string, bool) {
	category, ok := c.index[name]
	return category, ok
}

func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Name)
	}
	return out
}

func (c *Catalog) restaurants(category string) []string {
	for _, cat := range c.categories {
		if cat.Name == category {
			out := make([]string, len(cat.Restaurants))
			copy(out, cat.Restaurants)
			return out
		}
	}
	return nil
}

// Names returns every distinct restaurant name in table order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.index))
	seen := make(map[string]struct{}, len(c.index))
	for _, cat := range c.categories {
		for _, name := range cat.Restaurants {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// LooksLikeCategory reports whether dish starts with the first three letters
// of the restaurant's category. It is a hint only; unknown restaurants
// report false.
func (c *Catalog) LooksLikeCategory(restaurant, dish string) bool {
	category, ok := c.CategoryOf(restaurant)
	if !ok {
		return false
	}
	prefix := strings.ToLower(category)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return strings.HasPrefix(strings.ToLower(dish), prefix)
}
