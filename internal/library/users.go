package library

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/mmcdole/steamrun/internal/domain"
	"github.com/mmcdole/steamrun/internal/vdf"
)

// ListUsers returns the accounts in config/loginusers.vdf keyed by SteamID64.
// A missing file yields no users.
func (s *Service) ListUsers() (map[uint64]domain.User, error) {
	users, err := s.loginUsers()
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]domain.User, len(users))
	for _, u := range users {
		out[u.SteamID] = u
	}
	return out, nil
}

// MostRecentUser returns the account flagged MostRecent. When several are
// flagged, the first in file order wins.
func (s *Service) MostRecentUser() (domain.User, bool, error) {
	users, err := s.loginUsers()
	if err != nil {
		return domain.User{}, false, err
	}
	for _, u := range users {
		if u.MostRecent {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (s *Service) loginUsers() ([]domain.User, error) {
	path := loginUsersPath(s.root)
	users, err := s.users.GetOrCompute(path, parseLoginUsers)
	if err != nil {
		if errors.Is(err, domain.ErrFileUnavailable) && isMissing(err) {
			return []domain.User{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return users, nil
}

func parseLoginUsers(data []byte) ([]domain.User, error) {
	root, err := vdf.ParseText(data)
	if err != nil {
		return nil, err
	}

	users := []domain.User{}
	for _, child := range root.Children {
		id, err := strconv.ParseUint(child.Name, 10, 64)
		if err != nil || !child.IsObject() {
			continue
		}
		u := domain.User{SteamID: id}
		u.AccountName, _ = child.GetString("AccountName")
		u.PersonaName, _ = child.GetString("PersonaName")
		u.RememberPassword, _ = child.GetBool("RememberPassword")
		u.WantsOfflineMode, _ = child.GetBool("WantsOfflineMode")
		u.SkipOfflineModeWarning, _ = child.GetBool("SkipOfflineModeWarning")
		u.AllowAutoLogin, _ = child.GetBool("AllowAutoLogin")
		u.MostRecent, _ = child.GetBool("MostRecent")

		ts, ok := child.GetTime("Timestamp")
		if !ok {
			ts = time.Unix(0, 0).UTC()
		}
		u.Timestamp = ts
		users = append(users, u)
	}
	return users, nil
}
