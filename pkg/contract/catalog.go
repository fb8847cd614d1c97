package contract

// Catalog is a name-keyed registry of contracts, the "named contracts"
// surface spec §2 describes for C2. It is a plain value: callers own
// its lifetime, there is no package-level registry (spec §9's
// no-global-mutable-state resolution applies here too).
type Catalog struct {
	byName map[string]*Contract
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: map[string]*Contract{}}
}

// Register adds c to the catalog, failing if its name is already taken.
func (cat *Catalog) Register(c *Contract) error {
	if _, ok := cat.byName[c.Name]; ok {
		return &ErrDuplicateContract{Name: c.Name}
	}
	cat.byName[c.Name] = c
	return nil
}

// Lookup returns the contract registered under name, if any.
func (cat *Catalog) Lookup(name string) (*Contract, bool) {
	c, ok := cat.byName[name]
	return c, ok
}

// ErrDuplicateContract is returned by Register when name is already taken.
type ErrDuplicateContract struct {
	Name string
}

func (e *ErrDuplicateContract) Error() string { return "contract: duplicate name " + e.Name }
func (e *ErrDuplicateContract) Code() string  { return "DuplicateContract" }
