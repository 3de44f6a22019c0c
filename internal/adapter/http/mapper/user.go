package mapper

import (
	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

// ToUserItem exposes only the public profile; hashes and codes never leave
// the service.
func ToUserItem(user domain.User) dto.UserItem {
	return dto.UserItem{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
