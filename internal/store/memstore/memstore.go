// Package memstore provides an in-memory implementation of the store
// interface. It mirrors the Postgres store's semantics, including unique
// constraints and transactional rollback, and exists for tests and local
// development without a database.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bookzapp/bookz-server/internal/domain"
	apperrors "github.com/bookzapp/bookz-server/internal/errors"
	"github.com/bookzapp/bookz-server/internal/store"
)

type link struct {
	bookID   int64
	authorID int64
}

// data is the full database state. Transactions operate on a deep clone
// that replaces the live state only on commit.
type data struct {
	seq         int64
	authors     map[int64]domain.Author
	books       map[int64]domain.Book
	bookAuthors map[link]struct{}
	copies      map[int64]domain.BookCopy
	customers   map[int64]domain.Customer
	placements  map[int64]domain.Placement
}

func newData() *data {
	return &data{
		authors:     make(map[int64]domain.Author),
		books:       make(map[int64]domain.Book),
		bookAuthors: make(map[link]struct{}),
		copies:      make(map[int64]domain.BookCopy),
		customers:   make(map[int64]domain.Customer),
		placements:  make(map[int64]domain.Placement),
	}
}

func (d *data) clone() *data {
	c := &data{
		seq:         d.seq,
		authors:     make(map[int64]domain.Author, len(d.authors)),
		books:       make(map[int64]domain.Book, len(d.books)),
		bookAuthors: make(map[link]struct{}, len(d.bookAuthors)),
		copies:      make(map[int64]domain.BookCopy, len(d.copies)),
		customers:   make(map[int64]domain.Customer, len(d.customers)),
		placements:  make(map[int64]domain.Placement, len(d.placements)),
	}
	for id, a := range d.authors {
		a.Books = nil
		c.authors[id] = a
	}
	for id, b := range d.books {
		b.Authors, b.Copies = nil, nil
		c.books[id] = b
	}
	for l := range d.bookAuthors {
		c.bookAuthors[l] = struct{}{}
	}
	for id, bc := range d.copies {
		bc.Book, bc.Placement, bc.Customer = nil, nil, nil
		if bc.PlacementID != nil {
			v := *bc.PlacementID
			bc.PlacementID = &v
		}
		if bc.CustomerID != nil {
			v := *bc.CustomerID
			bc.CustomerID = &v
		}
		c.copies[id] = bc
	}
	for id, cu := range d.customers {
		cu.BorrowedCopies = nil
		c.customers[id] = cu
	}
	for id, p := range d.placements {
		c.placements[id] = p
	}
	return c
}

func (d *data) nextID() int64 {
	d.seq++
	return d.seq
}

// Store is the in-memory store. A single mutex serializes all access, so
// the forUpdate flags of the interface are satisfied trivially.
type Store struct {
	mu   sync.Mutex
	data *data
}

var _ store.Store = (*Store)(nil)

// New returns an empty in-memory store.
func New() *Store {
	return &Store{data: newData()}
}

func (s *Store) Close() error { return nil }

// WithinTx runs fn against a clone of the state and swaps the clone in
// only when fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx store.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := s.data.clone()
	if err := fn(ctx, &txView{data: clone}); err != nil {
		return err
	}
	s.data = clone
	return nil
}

// txView exposes the Tx operations over a data set. The owning Store
// holds its mutex for the view's whole lifetime.
type txView struct {
	data *data
}

var _ store.Tx = (*txView)(nil)

// Auto-commit operations delegate to a short-lived view over live data.

func (s *Store) view() (*txView, func()) {
	s.mu.Lock()
	return &txView{data: s.data}, s.mu.Unlock
}

func sortedIDs[T any](m map[int64]T) []int64 {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func now() time.Time { return time.Now().UTC() }

// --- placements ---

func (t *txView) FindFreeSlots(ctx context.Context, n int) ([]int64, error) {
	var free []int64
	for _, id := range sortedIDs(t.data.placements) {
		if t.data.placements[id].Status == domain.PlacementFree {
			free = append(free, id)
			if len(free) == n {
				return free, nil
			}
		}
	}
	return nil, apperrors.InsufficientCapacityf(
		"need %d free placements, only %d available", n, len(free))
}

func (t *txView) SetPlacementStatus(ctx context.Context, ids []int64, status domain.PlacementStatus) error {
	for _, id := range ids {
		p, ok := t.data.placements[id]
		if !ok {
			return apperrors.NotFoundf("placement %d not found", id)
		}
		p.Status = status
		p.UpdatedAt = now()
		t.data.placements[id] = p
	}
	return nil
}

func (t *txView) GetPlacement(ctx context.Context, id int64) (*domain.Placement, error) {
	p, ok := t.data.placements[id]
	if !ok {
		return nil, apperrors.NotFoundf("placement %d not found", id)
	}
	return &p, nil
}

func (t *txView) ReplaceGrid(ctx context.Context, lines, columns, shelves, positions int) (int, error) {
	for id, bc := range t.data.copies {
		if bc.PlacementID != nil {
			bc.PlacementID = nil
			t.data.copies[id] = bc
		}
	}
	t.data.placements = make(map[int64]domain.Placement)

	ts := now()
	total := 0
	for line := 0; line < lines; line++ {
		for column := 1; column <= columns; column++ {
			for shelf := 0; shelf < shelves; shelf++ {
				for position := 1; position <= positions; position++ {
					id := t.data.nextID()
					t.data.placements[id] = domain.Placement{
						Entity:   domain.Entity{ID: id, CreatedAt: ts, UpdatedAt: ts},
						Line:     string(rune('A' + line)),
						Column:   column,
						Shelf:    string(rune('A' + shelf)),
						Position: position,
						Status:   domain.PlacementFree,
					}
					total++
				}
			}
		}
	}
	return total, nil
}

func (t *txView) CapacitySummary(ctx context.Context) (*store.DepositorySummary, error) {
	var s store.DepositorySummary
	for _, p := range t.data.placements {
		s.TotalSlots++
		switch p.Status {
		case domain.PlacementOccupied:
			s.Occupied++
		case domain.PlacementFree:
			s.Free++
		}
		if p.Line > s.MaxLine {
			s.MaxLine = p.Line
		}
		if p.Column > s.MaxColumn {
			s.MaxColumn = p.Column
		}
		if p.Shelf > s.MaxShelf {
			s.MaxShelf = p.Shelf
		}
		if p.Position > s.MaxPosition {
			s.MaxPosition = p.Position
		}
	}
	return &s, nil
}

// --- authors ---

func (t *txView) CreateAuthor(ctx context.Context, name domain.FullName) (*domain.Author, error) {
	for _, a := range t.data.authors {
		if a.FullName == name {
			return nil, apperrors.ErrAuthorAlreadyExists
		}
	}

	ts := now()
	a := domain.Author{
		Entity:   domain.Entity{ID: t.data.nextID(), CreatedAt: ts, UpdatedAt: ts},
		FullName: name,
	}
	t.data.authors[a.ID] = a
	out := a
	return &out, nil
}

func (t *txView) UpdateAuthor(ctx context.Context, id int64, name domain.FullName) (*domain.Author, error) {
	a, ok := t.data.authors[id]
	if !ok {
		return nil, apperrors.ErrAuthorNotFound
	}
	for otherID, other := range t.data.authors {
		if otherID != id && other.FullName == name {
			return nil, apperrors.ErrAuthorAlreadyExists
		}
	}

	a.FullName = name
	a.UpdatedAt = now()
	t.data.authors[id] = a
	out := a
	return &out, nil
}

func (t *txView) GetAuthor(ctx context.Context, id int64, forUpdate bool) (*domain.Author, error) {
	a, ok := t.data.authors[id]
	if !ok {
		return nil, apperrors.ErrAuthorNotFound
	}
	out := a
	t.loadAuthorBooks(&out)
	return &out, nil
}

func (t *txView) GetAuthorByName(ctx context.Context, name domain.FullName, forUpdate bool) (*domain.Author, error) {
	for _, id := range sortedIDs(t.data.authors) {
		if t.data.authors[id].FullName == name {
			return t.GetAuthor(ctx, id, forUpdate)
		}
	}
	return nil, apperrors.ErrAuthorNotFound
}

func (t *txView) loadAuthorBooks(a *domain.Author) {
	var bookIDs []int64
	for l := range t.data.bookAuthors {
		if l.authorID == a.ID {
			bookIDs = append(bookIDs, l.bookID)
		}
	}
	slices.Sort(bookIDs)
	for _, id := range bookIDs {
		b := t.data.books[id]
		a.Books = append(a.Books, &b)
	}
}

func (t *txView) DeleteAuthors(ctx context.Context, ids []int64) ([]*domain.Author, error) {
	var deleted []*domain.Author
	for _, id := range ids {
		a, ok := t.data.authors[id]
		if !ok {
			continue
		}
		for l := range t.data.bookAuthors {
			if l.authorID == id {
				delete(t.data.bookAuthors, l)
			}
		}
		delete(t.data.authors, id)
		out := a
		deleted = append(deleted, &out)
	}
	return deleted, nil
}

func (t *txView) AuthorIDsWithoutBooks(ctx context.Context, forUpdate bool) ([]int64, error) {
	linked := make(map[int64]bool)
	for l := range t.data.bookAuthors {
		linked[l.authorID] = true
	}

	var ids []int64
	for _, id := range sortedIDs(t.data.authors) {
		if !linked[id] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (t *txView) BookIDsByAuthor(ctx context.Context, authorID int64) ([]int64, error) {
	var ids []int64
	for l := range t.data.bookAuthors {
		if l.authorID == authorID {
			ids = append(ids, l.bookID)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (t *txView) LinkBookAuthor(ctx context.Context, bookID, authorID int64) error {
	t.data.bookAuthors[link{bookID: bookID, authorID: authorID}] = struct{}{}
	return nil
}

// --- books ---

func (t *txView) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	for _, b := range t.data.books {
		if b.ISBN == book.ISBN {
			return nil, apperrors.ErrBookAlreadyExists
		}
	}

	ts := now()
	b := *book
	b.Entity = domain.Entity{ID: t.data.nextID(), CreatedAt: ts, UpdatedAt: ts}
	b.Authors, b.Copies = nil, nil
	t.data.books[b.ID] = b
	out := b
	return &out, nil
}

func (t *txView) GetBook(ctx context.Context, id int64, forUpdate bool) (*domain.Book, error) {
	b, ok := t.data.books[id]
	if !ok {
		return nil, apperrors.ErrBookNotFound
	}

	out := b
	var authorIDs []int64
	for l := range t.data.bookAuthors {
		if l.bookID == id {
			authorIDs = append(authorIDs, l.authorID)
		}
	}
	slices.Sort(authorIDs)
	for _, aid := range authorIDs {
		a := t.data.authors[aid]
		out.Authors = append(out.Authors, &a)
	}

	copies, err := t.ListCopiesByBook(ctx, id, false)
	if err != nil {
		return nil, err
	}
	out.Copies = copies
	return &out, nil
}

func (t *txView) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	for _, id := range sortedIDs(t.data.books) {
		if t.data.books[id].ISBN == isbn {
			return t.GetBook(ctx, id, false)
		}
	}
	return nil, apperrors.ErrBookNotFound
}

func (t *txView) DeleteBooks(ctx context.Context, ids []int64) ([]*domain.Book, error) {
	var deleted []*domain.Book
	for _, id := range ids {
		b, ok := t.data.books[id]
		if !ok {
			continue
		}
		for l := range t.data.bookAuthors {
			if l.bookID == id {
				delete(t.data.bookAuthors, l)
			}
		}
		delete(t.data.books, id)
		out := b
		deleted = append(deleted, &out)
	}
	return deleted, nil
}

func (t *txView) BookIDsWithoutCopies(ctx context.Context, forUpdate bool) ([]int64, error) {
	withCopies := make(map[int64]bool)
	for _, bc := range t.data.copies {
		withCopies[bc.BookID] = true
	}

	var ids []int64
	for _, id := range sortedIDs(t.data.books) {
		if !withCopies[id] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// --- book copies ---

func (t *txView) CreateCopies(ctx context.Context, copies []*domain.BookCopy) ([]*domain.BookCopy, error) {
	ts := now()
	created := make([]*domain.BookCopy, 0, len(copies))
	for _, c := range copies {
		if c.PlacementID != nil {
			if err := t.checkPlacementFreeOfCopies(*c.PlacementID, 0); err != nil {
				return nil, err
			}
		}
		bc := *c
		bc.Entity = domain.Entity{ID: t.data.nextID(), CreatedAt: ts, UpdatedAt: ts}
		bc.Book, bc.Placement, bc.Customer = nil, nil, nil
		t.data.copies[bc.ID] = bc
		out := bc
		created = append(created, &out)
	}
	return created, nil
}

func (t *txView) checkPlacementFreeOfCopies(placementID, selfID int64) error {
	for _, other := range t.data.copies {
		if other.ID != selfID && other.PlacementID != nil && *other.PlacementID == placementID {
			return apperrors.Conflictf("placement is already assigned to another copy")
		}
	}
	return nil
}

func (t *txView) GetCopy(ctx context.Context, id int64, forUpdate bool) (*domain.BookCopy, error) {
	bc, ok := t.data.copies[id]
	if !ok {
		return nil, apperrors.ErrBookCopyNotFound
	}
	out := bc
	t.hydrateCopy(&out, true)
	return &out, nil
}

func (t *txView) hydrateCopy(bc *domain.BookCopy, withBook bool) {
	if withBook {
		if b, ok := t.data.books[bc.BookID]; ok {
			bc.Book = &b
		}
	}
	if bc.PlacementID != nil {
		if p, ok := t.data.placements[*bc.PlacementID]; ok {
			bc.Placement = &p
		}
	}
	if bc.CustomerID != nil {
		if c, ok := t.data.customers[*bc.CustomerID]; ok {
			bc.Customer = &c
		}
	}
}

func (t *txView) ListCopiesByBook(ctx context.Context, bookID int64, forUpdate bool) ([]*domain.BookCopy, error) {
	return t.listCopies(func(bc domain.BookCopy) bool { return bc.BookID == bookID }, false), nil
}

func (t *txView) ListCopiesByStatus(ctx context.Context, status domain.CopyStatus) ([]*domain.BookCopy, error) {
	return t.listCopies(func(bc domain.BookCopy) bool { return bc.Status == status }, true), nil
}

func (t *txView) ListCopiesByStatement(ctx context.Context, statement domain.CopyStatement) ([]*domain.BookCopy, error) {
	return t.listCopies(func(bc domain.BookCopy) bool { return bc.Statement == statement }, true), nil
}

func (t *txView) listCopies(match func(domain.BookCopy) bool, withBook bool) []*domain.BookCopy {
	var out []*domain.BookCopy
	for _, id := range sortedIDs(t.data.copies) {
		bc := t.data.copies[id]
		if !match(bc) {
			continue
		}
		c := bc
		t.hydrateCopy(&c, withBook)
		out = append(out, &c)
	}
	return out
}

func (t *txView) UpdateCopy(ctx context.Context, copy *domain.BookCopy) (*domain.BookCopy, error) {
	bc, ok := t.data.copies[copy.ID]
	if !ok {
		return nil, apperrors.ErrBookCopyNotFound
	}
	if copy.PlacementID != nil {
		if err := t.checkPlacementFreeOfCopies(*copy.PlacementID, copy.ID); err != nil {
			return nil, err
		}
	}

	bc.Status = copy.Status
	bc.Statement = copy.Statement
	bc.PlacementID = copy.PlacementID
	bc.CustomerID = copy.CustomerID
	bc.UpdatedAt = now()
	t.data.copies[bc.ID] = bc
	out := bc
	return &out, nil
}

func (t *txView) DeleteCopies(ctx context.Context, ids []int64) ([]*domain.BookCopy, error) {
	var deleted []*domain.BookCopy
	for _, id := range ids {
		bc, ok := t.data.copies[id]
		if !ok {
			continue
		}
		delete(t.data.copies, id)
		out := bc
		deleted = append(deleted, &out)
	}
	return deleted, nil
}

// --- customers ---

func (t *txView) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := t.checkCustomerUnique(customer, 0); err != nil {
		return nil, err
	}

	ts := now()
	c := *customer
	c.Entity = domain.Entity{ID: t.data.nextID(), CreatedAt: ts, UpdatedAt: ts}
	c.BorrowedCopies = nil
	t.data.customers[c.ID] = c
	out := c
	return &out, nil
}

func (t *txView) checkCustomerUnique(customer *domain.Customer, selfID int64) error {
	for id, other := range t.data.customers {
		if id == selfID {
			continue
		}
		switch {
		case other.Email == customer.Email:
			return apperrors.ErrCustomerEmailExists
		case other.Phone == customer.Phone:
			return apperrors.ErrCustomerPhoneExists
		case other.FullName == customer.FullName:
			return apperrors.ErrCustomerFullNameExists
		}
	}
	return nil
}

func (t *txView) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	c, ok := t.data.customers[customer.ID]
	if !ok {
		return nil, apperrors.ErrCustomerNotFound
	}
	if err := t.checkCustomerUnique(customer, customer.ID); err != nil {
		return nil, err
	}

	c.FullName = customer.FullName
	c.Email = customer.Email
	c.Phone = customer.Phone
	c.UpdatedAt = now()
	t.data.customers[c.ID] = c
	out := c
	return &out, nil
}

func (t *txView) GetCustomer(ctx context.Context, id int64, forUpdate bool) (*domain.Customer, error) {
	c, ok := t.data.customers[id]
	if !ok {
		return nil, apperrors.ErrCustomerNotFound
	}
	out := c
	t.loadBorrowedCopies(&out)
	return &out, nil
}

func (t *txView) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return t.findCustomer(func(c domain.Customer) bool { return c.Email == email })
}

func (t *txView) GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	return t.findCustomer(func(c domain.Customer) bool { return c.Phone == phone })
}

func (t *txView) GetCustomerByName(ctx context.Context, name domain.FullName) (*domain.Customer, error) {
	return t.findCustomer(func(c domain.Customer) bool { return c.FullName == name })
}

func (t *txView) findCustomer(match func(domain.Customer) bool) (*domain.Customer, error) {
	for _, id := range sortedIDs(t.data.customers) {
		if c := t.data.customers[id]; match(c) {
			out := c
			t.loadBorrowedCopies(&out)
			return &out, nil
		}
	}
	return nil, apperrors.ErrCustomerNotFound
}

func (t *txView) loadBorrowedCopies(c *domain.Customer) {
	for _, id := range sortedIDs(t.data.copies) {
		bc := t.data.copies[id]
		if bc.CustomerID == nil || *bc.CustomerID != c.ID {
			continue
		}
		out := bc
		t.hydrateCopy(&out, true)
		out.Customer = nil
		c.BorrowedCopies = append(c.BorrowedCopies, &out)
	}
}

// --- auto-commit delegation ---

func (s *Store) FindFreeSlots(ctx context.Context, n int) ([]int64, error) {
	v, done := s.view()
	defer done()
	return v.FindFreeSlots(ctx, n)
}

func (s *Store) SetPlacementStatus(ctx context.Context, ids []int64, status domain.PlacementStatus) error {
	v, done := s.view()
	defer done()
	return v.SetPlacementStatus(ctx, ids, status)
}

func (s *Store) GetPlacement(ctx context.Context, id int64) (*domain.Placement, error) {
	v, done := s.view()
	defer done()
	return v.GetPlacement(ctx, id)
}

func (s *Store) ReplaceGrid(ctx context.Context, lines, columns, shelves, positions int) (int, error) {
	v, done := s.view()
	defer done()
	return v.ReplaceGrid(ctx, lines, columns, shelves, positions)
}

func (s *Store) CapacitySummary(ctx context.Context) (*store.DepositorySummary, error) {
	v, done := s.view()
	defer done()
	return v.CapacitySummary(ctx)
}

func (s *Store) CreateAuthor(ctx context.Context, name domain.FullName) (*domain.Author, error) {
	v, done := s.view()
	defer done()
	return v.CreateAuthor(ctx, name)
}

func (s *Store) UpdateAuthor(ctx context.Context, id int64, name domain.FullName) (*domain.Author, error) {
	v, done := s.view()
	defer done()
	return v.UpdateAuthor(ctx, id, name)
}

func (s *Store) GetAuthor(ctx context.Context, id int64, forUpdate bool) (*domain.Author, error) {
	v, done := s.view()
	defer done()
	return v.GetAuthor(ctx, id, forUpdate)
}

func (s *Store) GetAuthorByName(ctx context.Context, name domain.FullName, forUpdate bool) (*domain.Author, error) {
	v, done := s.view()
	defer done()
	return v.GetAuthorByName(ctx, name, forUpdate)
}

func (s *Store) DeleteAuthors(ctx context.Context, ids []int64) ([]*domain.Author, error) {
	v, done := s.view()
	defer done()
	return v.DeleteAuthors(ctx, ids)
}

func (s *Store) AuthorIDsWithoutBooks(ctx context.Context, forUpdate bool) ([]int64, error) {
	v, done := s.view()
	defer done()
	return v.AuthorIDsWithoutBooks(ctx, forUpdate)
}

func (s *Store) BookIDsByAuthor(ctx context.Context, authorID int64) ([]int64, error) {
	v, done := s.view()
	defer done()
	return v.BookIDsByAuthor(ctx, authorID)
}

func (s *Store) LinkBookAuthor(ctx context.Context, bookID, authorID int64) error {
	v, done := s.view()
	defer done()
	return v.LinkBookAuthor(ctx, bookID, authorID)
}

func (s *Store) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	v, done := s.view()
	defer done()
	return v.CreateBook(ctx, book)
}

func (s *Store) GetBook(ctx context.Context, id int64, forUpdate bool) (*domain.Book, error) {
	v, done := s.view()
	defer done()
	return v.GetBook(ctx, id, forUpdate)
}

func (s *Store) GetBookByISBN(ctx context.Context, isbn string) (*domain.Book, error) {
	v, done := s.view()
	defer done()
	return v.GetBookByISBN(ctx, isbn)
}

func (s *Store) DeleteBooks(ctx context.Context, ids []int64) ([]*domain.Book, error) {
	v, done := s.view()
	defer done()
	return v.DeleteBooks(ctx, ids)
}

func (s *Store) BookIDsWithoutCopies(ctx context.Context, forUpdate bool) ([]int64, error) {
	v, done := s.view()
	defer done()
	return v.BookIDsWithoutCopies(ctx, forUpdate)
}

func (s *Store) CreateCopies(ctx context.Context, copies []*domain.BookCopy) ([]*domain.BookCopy, error) {
	v, done := s.view()
	defer done()
	return v.CreateCopies(ctx, copies)
}

func (s *Store) GetCopy(ctx context.Context, id int64, forUpdate bool) (*domain.BookCopy, error) {
	v, done := s.view()
	defer done()
	return v.GetCopy(ctx, id, forUpdate)
}

func (s *Store) ListCopiesByBook(ctx context.Context, bookID int64, forUpdate bool) ([]*domain.BookCopy, error) {
	v, done := s.view()
	defer done()
	return v.ListCopiesByBook(ctx, bookID, forUpdate)
}

func (s *Store) ListCopiesByStatus(ctx context.Context, status domain.CopyStatus) ([]*domain.BookCopy, error) {
	v, done := s.view()
	defer done()
	return v.ListCopiesByStatus(ctx, status)
}

func (s *Store) ListCopiesByStatement(ctx context.Context, statement domain.CopyStatement) ([]*domain.BookCopy, error) {
	v, done := s.view()
	defer done()
	return v.ListCopiesByStatement(ctx, statement)
}

func (s *Store) UpdateCopy(ctx context.Context, copy *domain.BookCopy) (*domain.BookCopy, error) {
	v, done := s.view()
	defer done()
	return v.UpdateCopy(ctx, copy)
}

func (s *Store) DeleteCopies(ctx context.Context, ids []int64) ([]*domain.BookCopy, error) {
	v, done := s.view()
	defer done()
	return v.DeleteCopies(ctx, ids)
}

func (s *Store) CreateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	v, done := s.view()
	defer done()
	return v.CreateCustomer(ctx, customer)
}

func (s *Store) UpdateCustomer(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	v, done := s.view()
	defer done()
	return v.UpdateCustomer(ctx, customer)
}

func (s *Store) GetCustomer(ctx context.Context, id int64, forUpdate bool) (*domain.Customer, error) {
	v, done := s.view()
	defer done()
	return v.GetCustomer(ctx, id, forUpdate)
}

func (s *Store) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	v, done := s.view()
	defer done()
	return v.GetCustomerByEmail(ctx, email)
}

func (s *Store) GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	v, done := s.view()
	defer done()
	return v.GetCustomerByPhone(ctx, phone)
}

func (s *Store) GetCustomerByName(ctx context.Context, name domain.FullName) (*domain.Customer, error) {
	v, done := s.view()
	defer done()
	return v.GetCustomerByName(ctx, name)
}
