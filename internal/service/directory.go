package service

import (
	"crypto/tls"
	"time"

	"makeitall-backend/internal/config"

	"github.com/go-ldap/ldap/v3"
)

// DirectoryEntry is a subset of directory attributes for an employee,
// used to offer assignment candidates in the assign-task flow.
type DirectoryEntry struct {
	DN          string `json:"dn"`
	DisplayName string `json:"displayName"`
	Mail        string `json:"mail"`
	GivenName   string `json:"givenName"`
	SN          string `json:"sn"`
}

// DirectoryService searches the corporate LDAP directory for employees
type DirectoryService struct {
	cfg *config.Config
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(cfg *config.Config) *DirectoryService {
	return &DirectoryService{cfg: cfg}
}

// SearchEmployees searches directory users by common name prefix
func (s *DirectoryService) SearchEmployees(query string) ([]DirectoryEntry, error) {
	addr := s.cfg.LDAPHost + ":" + s.cfg.LDAPPort

	l, err := ldap.DialTLS("tcp", addr, &tls.Config{InsecureSkipVerify: s.cfg.LDAPInsecureSkipVerify})
	if err != nil {
		return nil, err
	}
	defer l.Close()

	if s.cfg.LDAPTimeoutSec > 0 {
		l.SetTimeout(time.Duration(s.cfg.LDAPTimeoutSec) * time.Second)
	}

	if err := l.Bind(s.cfg.LDAPBindDN, s.cfg.LDAPBindPW); err != nil {
		return nil, err
	}

	filter := "(|(cn=" + ldap.EscapeFilter(query) + "*)(mail=" + ldap.EscapeFilter(query) + "*))"
	attrs := []string{"displayName", "mail", "givenName", "sn"}

	req := ldap.NewSearchRequest(
		s.cfg.LDAPBaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		s.cfg.LDAPTimeoutSec,
		false,
		filter,
		attrs,
		nil,
	)

	res, err := l.Search(req)
	if err != nil {
		return nil, err
	}

	out := make([]DirectoryEntry, 0, len(res.Entries))
	for _, e := range res.Entries {
		out = append(out, DirectoryEntry{
			DN:          e.DN,
			DisplayName: e.GetAttributeValue("displayName"),
			Mail:        e.GetAttributeValue("mail"),
			GivenName:   e.GetAttributeValue("givenName"),
			SN:          e.GetAttributeValue("sn"),
		})
	}
	return out, nil
}
