package parserpool_test

import (
	"sync"
	"testing"

	"github.com/gnames/gnagro/pkg/parserpool"
	"github.com/stretchr/testify/assert"
)

func TestGenus(t *testing.T) {
	pool := parserpool.NewPool(2)
	defer pool.Close()

	tests := []struct {
		name, genus string
	}{
		{"Glycine max (L.) Merr.", "Glycine"},
		{"Zea mays L.", "Zea"},
		{"Phaseolus vulgaris var. nanus", "Phaseolus"},
		{"Solanum", "Solanum"},
		{"123", ""},
		{"", ""},
	}
	for _, v := range tests {
		assert.Equal(t, v.genus, pool.Genus(v.name), v.name)
	}
}

func TestConcurrentParse(t *testing.T) {
	pool := parserpool.NewPool(0)
	defer pool.Close()

	var wg sync.WaitGroup
	res := make([]string, 20)
	for i := range res {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res[i] = pool.Genus("Cucurbita pepo L.")
		}()
	}
	wg.Wait()
	for _, v := range res {
		assert.Equal(t, "Cucurbita", v)
	}
}
