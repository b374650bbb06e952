package game

// UIDAllocator hands out card instance ids. One allocator belongs to one game.
type UIDAllocator struct {
	Last int `json:"last"`
}

func NewUIDAllocator() *UIDAllocator {
	return &UIDAllocator{}
}

// Next returns a fresh id. Ids start at 1 so that 0 never names a real card.
func (a *UIDAllocator) Next() int {
	a.Last++
	return a.Last
}
