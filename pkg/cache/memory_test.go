package cache

import (
	"sort"
	"sync"
	"testing"
)

type account struct {
	ID    int
	Name  string
	Roles []string
	Age   int
}

func roleIndex(a account) []any {
	vals := make([]any, 0, len(a.Roles))
	for _, r := range a.Roles {
		vals = append(vals, r)
	}
	return vals
}

func TestMemoryCache_Basic(t *testing.T) {
	c := NewMemoryCache[int, string]()

	c.Set(1, "alpha")

	// Get
	if got, ok := c.Get(1); !ok || got != "alpha" {
		t.Errorf("Get(1) = %v, %v; want alpha, true", got, ok)
	}

	// Contains
	if !c.Contains(1) {
		t.Error("Contains(1) = false, want true")
	}

	// Len
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	// Del
	c.Del(1)
	if _, ok := c.Get(1); ok {
		t.Error("Get(1) found item after Del")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
}

func TestMemoryCache_MultiValueIndex(t *testing.T) {
	c := NewMemoryCache[int, account]()
	c.AddIndex("role", roleIndex)

	accounts := []account{
		{ID: 1, Name: "Alice", Roles: []string{"admin", "operator"}},
		{ID: 2, Name: "Bob", Roles: []string{"operator"}},
		{ID: 3, Name: "Charlie", Roles: []string{"viewer"}},
	}
	for _, a := range accounts {
		c.Set(a.ID, a)
	}

	// Alice is filed under both of her roles.
	admins, err := c.Find("role", "admin")
	if err != nil {
		t.Fatalf("Find(role, admin) error: %v", err)
	}
	if len(admins) != 1 || admins[0].ID != 1 {
		t.Errorf("Find(role, admin) = %v, want [Alice]", admins)
	}

	operators, err := c.Find("role", "operator")
	if err != nil {
		t.Fatalf("Find(role, operator) error: %v", err)
	}
	if len(operators) != 2 {
		t.Errorf("Find(role, operator) returned %d items, want 2", len(operators))
	}
}

func TestMemoryCache_IndexMaintenance(t *testing.T) {
	c := NewMemoryCache[int, account]()
	c.AddIndex("role", roleIndex)

	c.Set(1, account{ID: 1, Name: "Alice", Roles: []string{"admin", "operator"}})

	// Update drops the stale index entries.
	c.Set(1, account{ID: 1, Name: "Alice", Roles: []string{"viewer"}})

	admins, _ := c.Find("role", "admin")
	if len(admins) != 0 {
		t.Errorf("Find(role, admin) after update = %v, want []", admins)
	}
	viewers, _ := c.Find("role", "viewer")
	if len(viewers) != 1 {
		t.Errorf("Find(role, viewer) after update returned %d items, want 1", len(viewers))
	}

	// Delete drops every entry of the item.
	c.Del(1)
	viewers, _ = c.Find("role", "viewer")
	if len(viewers) != 0 {
		t.Errorf("Find(role, viewer) after delete returned %d items, want 0", len(viewers))
	}
}

func TestMemoryCache_AddIndexReindexesExisting(t *testing.T) {
	c := NewMemoryCache[int, account]()

	c.Set(1, account{ID: 1, Roles: []string{"admin"}})
	c.Set(2, account{ID: 2, Roles: []string{"admin", "viewer"}})

	// Index registered after the fact still sees existing items.
	c.AddIndex("role", roleIndex)

	admins, err := c.Find("role", "admin")
	if err != nil {
		t.Fatalf("Find(role, admin) error: %v", err)
	}
	if len(admins) != 2 {
		t.Errorf("Find(role, admin) returned %d items, want 2", len(admins))
	}
}

func TestMemoryCache_EmptyExtraction(t *testing.T) {
	c := NewMemoryCache[int, account]()
	c.AddIndex("role", roleIndex)

	c.Set(1, account{ID: 1, Name: "NoRoles"})

	if got, _ := c.Find("role", "admin"); len(got) != 0 {
		t.Errorf("Find(role, admin) = %v, want []", got)
	}
	// Item without index values is still retrievable by key.
	if !c.Contains(1) {
		t.Error("Contains(1) = false, want true")
	}
}

func TestMemoryCache_UnknownIndex(t *testing.T) {
	c := NewMemoryCache[int, account]()

	if _, err := c.Find("nope", "x"); err != ErrIndexNotFound {
		t.Errorf("Find(nope) error = %v, want ErrIndexNotFound", err)
	}
}

func TestMemoryCache_Filter(t *testing.T) {
	c := NewMemoryCache[int, account]()
	for i := 0; i < 10; i++ {
		c.Set(i, account{ID: i, Age: i * 5})
	}

	res := c.Filter(func(a account) bool {
		return a.Age > 20
	})

	// Expect 25, 30, 35, 40, 45 (5 items)
	if len(res) != 5 {
		t.Errorf("Filter(>20) returned %d items, want 5", len(res))
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache[int, account]()
	c.AddIndex("role", roleIndex)
	c.Set(1, account{ID: 1, Roles: []string{"admin"}})

	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	// Extractors survive a clear.
	c.Set(2, account{ID: 2, Roles: []string{"admin"}})
	admins, _ := c.Find("role", "admin")
	if len(admins) != 1 {
		t.Errorf("Find(role, admin) after Clear+Set returned %d items, want 1", len(admins))
	}
}

func TestMemoryCache_Concurrency(_ *testing.T) {
	c := NewMemoryCache[int, int]()
	c.AddIndex("mod", func(v int) []any { return []any{v % 2} })

	var wg sync.WaitGroup
	workers := 10
	ops := 100

	// Writers
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				key := id*ops + i
				c.Set(key, key)
				if i%2 == 0 {
					c.Del(key)
				}
			}
		}(w)
	}

	// Readers
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < ops; i++ {
				c.Get(1)
				_, _ = c.Find("mod", 0)
			}
		}()
	}

	wg.Wait()
}

func TestMemoryCache_KeysValues(t *testing.T) {
	c := NewMemoryCache[string, int]()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	keys := c.Keys()
	values := c.Values()

	if len(keys) != 3 {
		t.Errorf("Keys() len = %d, want 3", len(keys))
	}
	if len(values) != 3 {
		t.Errorf("Values() len = %d, want 3", len(values))
	}

	sort.Strings(keys)
	if keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("Keys() returned unexpected: %v", keys)
	}
}
