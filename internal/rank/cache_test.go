package rank

import (
	"encoding/json"
	"sync"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("seo"); ok {
		t.Error("Get() on empty cache reported a hit")
	}
	if c.Previous("seo") != nil {
		t.Error("Previous() on empty cache should be nil")
	}

	c.Set("seo", 4)
	c.Set("serp", 0)

	if r, ok := c.Get("seo"); !ok || r != 4 {
		t.Errorf("Get(seo) = %d, %v, want 4, true", r, ok)
	}
	if p := c.Previous("serp"); p == nil || *p != 0 {
		t.Errorf("Previous(serp) = %v, want pointer to 0", p)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	c.Set("seo", 2)
	if r, _ := c.Get("seo"); r != 2 {
		t.Errorf("Get(seo) after overwrite = %d, want 2", r)
	}
}

func TestCache_SnapshotIsCopy(t *testing.T) {
	c := NewCache()
	c.Set("seo", 1)

	snap := c.Snapshot()
	snap["seo"] = 99

	if r, _ := c.Get("seo"); r != 1 {
		t.Errorf("mutating snapshot changed cache: got %d", r)
	}
}

func TestCache_Clear(t *testing.T) {
	c := NewCache()
	c.Set("a", 1)
	c.Set("b", 2)
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestCache_JSON(t *testing.T) {
	c := NewCache()
	c.Set("seo tools", 3)
	c.Set("rank tracker", 0)

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	restored := NewCache()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if r, ok := restored.Get("seo tools"); !ok || r != 3 {
		t.Errorf("restored Get(seo tools) = %d, %v", r, ok)
	}
	if r, ok := restored.Get("rank tracker"); !ok || r != 0 {
		t.Errorf("restored Get(rank tracker) = %d, %v", r, ok)
	}

	if err := json.Unmarshal([]byte(`[1,2]`), restored); err == nil {
		t.Error("Unmarshal(array) expected error")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set("kw", n)
			c.Get("kw")
			c.Snapshot()
		}(i)
	}
	wg.Wait()
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}
