package account

// Mock is an in-memory Store used by tests.
type Mock struct {
	Accounts []*Account
	Err      error

	nextID int
}

func (m *Mock) Create(a *Account) (*Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, existing := range m.Accounts {
		if existing.Email != "" && existing.Email == a.Email {
			return nil, ErrEmailExists
		}
		if existing.WalletID != "" && existing.WalletID == a.WalletID {
			return nil, ErrWalletExists
		}
	}
	if m.nextID == 0 {
		m.nextID = len(m.Accounts)
	}
	m.nextID++
	created := *a
	created.ID = m.nextID
	m.Accounts = append(m.Accounts, &created)
	return &created, nil
}

func (m *Mock) FindByEmail(email string) (*Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (m *Mock) FindByWallet(walletID string) (*Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Accounts {
		if a.WalletID != "" && a.WalletID == walletID {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (m *Mock) FindByID(id int) (*Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, a := range m.Accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ErrAccountNotFound
}

func (m *Mock) All() ([]*Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Accounts, nil
}

func (m *Mock) List(query string, page, limit int) (*ListResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return &ListResult{Users: m.Accounts, Total: len(m.Accounts), Page: page, Limit: limit}, nil
}

func (m *Mock) Update(id int, fullName, organization, phone string, role Role) (*Account, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	a, err := m.FindByID(id)
	if err != nil {
		return nil, err
	}
	a.FullName = fullName
	a.Organization = organization
	a.Phone = phone
	a.Role = role
	return a, nil
}

func (m *Mock) Delete(id int) error {
	if m.Err != nil {
		return m.Err
	}
	for i, a := range m.Accounts {
		if a.ID == id {
			m.Accounts = append(m.Accounts[:i], m.Accounts[i+1:]...)
			return nil
		}
	}
	return ErrAccountNotFound
}
