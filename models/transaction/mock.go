package transaction

// Mock is an in-memory Store used by tests.
type Mock struct {
	Transactions []*Transaction
	Err          error

	nextID int
}

func (m *Mock) Create(t *Transaction) (*Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.nextID == 0 {
		m.nextID = len(m.Transactions)
	}
	m.nextID++
	created := *t
	created.ID = m.nextID
	m.Transactions = append(m.Transactions, &created)
	return &created, nil
}

func (m *Mock) FindByID(id int) (*Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, t := range m.Transactions {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrTransactionNotFound
}

func (m *Mock) List(f Filter) ([]*Transaction, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	matchParty := func(t *Transaction, id int) bool {
		if t.FromUserID != nil && *t.FromUserID == id {
			return true
		}
		return t.ToUserID != nil && *t.ToUserID == id
	}

	result := []*Transaction{}
	for _, t := range m.Transactions {
		if f.ProductID > 0 && (t.ProductID == nil || *t.ProductID != f.ProductID) {
			continue
		}
		if f.UserID > 0 && !matchParty(t, f.UserID) {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.ViewerID > 0 && !matchParty(t, f.ViewerID) {
			continue
		}
		result = append(result, t)
	}
	return result, nil
}
