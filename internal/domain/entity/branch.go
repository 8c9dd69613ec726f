package entity

// Branch representa una sucursal física donde se mantiene stock.
type Branch struct {
	ID      string
	Name    string
	Address string
	Comuna  string
	Region  string
}
