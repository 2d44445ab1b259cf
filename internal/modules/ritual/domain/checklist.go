package domain

import "math"

// Checklist tracks which materials have been gathered.
type Checklist struct {
	items   []string
	checked map[string]bool
}

func NewChecklist(items []string) *Checklist {
	unique := make([]string, 0, len(items))
	seen := map[string]struct{}{}
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		unique = append(unique, item)
	}
	return &Checklist{items: unique, checked: map[string]bool{}}
}

func (c *Checklist) Items() []string {
	return append([]string(nil), c.items...)
}

func (c *Checklist) Has(item string) bool {
	for _, it := range c.items {
		if it == item {
			return true
		}
	}
	return false
}

// Toggle flips item and returns its new state. Unknown items are ignored.
func (c *Checklist) Toggle(item string) (checked bool, ok bool) {
	if !c.Has(item) {
		return false, false
	}
	if c.checked[item] {
		delete(c.checked, item)
		return false, true
	}
	c.checked[item] = true
	return true, true
}

// ToggleAll unchecks everything when all items are checked and checks
// everything otherwise.
func (c *Checklist) ToggleAll() {
	if c.CheckedCount() == len(c.items) {
		c.checked = map[string]bool{}
		return
	}
	for _, item := range c.items {
		c.checked[item] = true
	}
}

func (c *Checklist) IsChecked(item string) bool {
	return c.checked[item]
}

func (c *Checklist) CheckedCount() int {
	return len(c.checked)
}

// Percent is the rounded share of checked items; an empty list is 100.
func (c *Checklist) Percent() int {
	if len(c.items) == 0 {
		return 100
	}
	return int(math.Round(float64(len(c.checked)) / float64(len(c.items)) * 100))
}

func (c *Checklist) AllChecked() bool {
	return len(c.items) > 0 && len(c.checked) == len(c.items)
}
