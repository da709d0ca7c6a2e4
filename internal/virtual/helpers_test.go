package virtual_test

import (
	"strconv"

	"github.com/rshade/scrollkit/internal/virtual"
)

// makeItems returns n items keyed "item-0".."item-(n-1)" with the given size.
func makeItems(n, size int) []virtual.Item {
	items := make([]virtual.Item, n)
	for i := range items {
		items[i] = virtual.Item{ID: "item-" + strconv.Itoa(i), Size: size}
	}
	return items
}
