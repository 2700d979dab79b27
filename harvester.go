package faretrack

// Harvester collects the text of the city and price cells from a rendered
// results page, in document order.
type Harvester interface {
	Harvest(html string) (*RawResults, error)
}
