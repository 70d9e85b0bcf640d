package datarails

import (
	"github.com/pkg/errors"

	"github.com/askiada/go-datarails/internal/store"
	"github.com/askiada/go-datarails/pkg/table"
)

// DataBox holds the datasets of a run by name. A name refers to the table most
// recently put under it.
//
// Get returns the stored table itself, so in-place changes are visible to every
// later reader of the same name.
//
// DataBox is not safe for concurrent use.
type DataBox struct {
	tables *store.Ordered[*table.Table]
}

// NewDataBox creates an empty DataBox.
func NewDataBox() *DataBox {
	return &DataBox{
		tables: store.NewOrdered[*table.Table](),
	}
}

// Put stores tbl under name, replacing any previous table.
func (b *DataBox) Put(name string, tbl *table.Table) {
	b.tables.Put(name, tbl)
}

// Get returns the table stored under name. It fails with ErrNotFound if the name
// was never put.
func (b *DataBox) Get(name string) (*table.Table, error) {
	tbl, ok := b.tables.Get(name)
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "dataset %q", name)
	}

	return tbl, nil
}

// Lookup is Get without the error.
func (b *DataBox) Lookup(name string) (*table.Table, bool) {
	return b.tables.Get(name)
}

func (b *DataBox) Has(name string) bool {
	return b.tables.Has(name)
}

// Names returns the dataset names in the order they were first put.
func (b *DataBox) Names() []string {
	return b.tables.Keys()
}

func (b *DataBox) Len() int {
	return b.tables.Len()
}
