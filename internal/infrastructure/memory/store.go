// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa con STORE_DRIVER=memory y en los tests de casos de uso.
package memory

import (
	"sync"

	"github.com/adrianbura/copie-stok/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex // serializa transacciones
	data state
}

type state struct {
	products   map[string]*entity.Product
	warehouses map[string]*entity.Warehouse
	stock      map[stockKey]*entity.WarehouseStock
	movements  []*entity.StockMovement // orden de inserción
	documents  []*entity.InventoryDocument
	alerts     []*entity.Alert
	users      map[string]*entity.User
	grants     map[grantKey]*entity.UserWarehouse
}

type stockKey struct{ warehouseID, productID string }

type grantKey struct{ userID, warehouseID string }

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: state{
		products:   map[string]*entity.Product{},
		warehouses: map[string]*entity.Warehouse{},
		stock:      map[stockKey]*entity.WarehouseStock{},
		users:      map[string]*entity.User{},
		grants:     map[grantKey]*entity.UserWarehouse{},
	}}
}

// lockWrite toma el lock de escritura. Fuera de una transacción también toma txMu, para
// que un rollback no pise escrituras hechas mientras la transacción estaba abierta.
func (s *Store) lockWrite(inTx bool) func() {
	if inTx {
		s.mu.Lock()
		return s.mu.Unlock
	}
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

// txSnapshot copia de las colecciones que escribe una transacción (productos, stock,
// movimientos y documentos). Usuarios, concesiones, bodegas y alertas no se restauran.
type txSnapshot struct {
	products  map[string]*entity.Product
	stock     map[stockKey]*entity.WarehouseStock
	movements []*entity.StockMovement
	documents []*entity.InventoryDocument
}

func (d *state) snapshotTx() txSnapshot {
	c := txSnapshot{
		products:  make(map[string]*entity.Product, len(d.products)),
		stock:     make(map[stockKey]*entity.WarehouseStock, len(d.stock)),
		movements: make([]*entity.StockMovement, 0, len(d.movements)),
		documents: make([]*entity.InventoryDocument, 0, len(d.documents)),
	}
	for k, v := range d.products {
		c.products[k] = copyProduct(v)
	}
	for k, v := range d.stock {
		st := *v
		c.stock[k] = &st
	}
	for _, m := range d.movements {
		mm := *m
		c.movements = append(c.movements, &mm)
	}
	for _, doc := range d.documents {
		c.documents = append(c.documents, copyDocument(doc))
	}
	return c
}

func (d *state) restoreTx(c txSnapshot) {
	d.products = c.products
	d.stock = c.stock
	d.movements = c.movements
	d.documents = c.documents
}

func copyProduct(p *entity.Product) *entity.Product {
	c := *p
	if p.ExpiryDate != nil {
		t := *p.ExpiryDate
		c.ExpiryDate = &t
	}
	return &c
}

func copyDocument(d *entity.InventoryDocument) *entity.InventoryDocument {
	c := *d
	c.Items = append([]entity.DocumentItem(nil), d.Items...)
	return &c
}

func copyAlert(a *entity.Alert) *entity.Alert {
	c := *a
	if a.AcknowledgedAt != nil {
		t := *a.AcknowledgedAt
		c.AcknowledgedAt = &t
	}
	return &c
}

// page aplica limit/offset sobre n elementos; limit 0 = sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
