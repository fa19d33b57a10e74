package auth

import (
	"coworking/internal/domain"
	"coworking/internal/pkg/money"
)

type SignupBody struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
}

type LoginBody struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserView struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Role         string `json:"role"`
	Balance      string `json:"balance"`
	WalletStatus string `json:"wallet_status"`
}

func NewUserView(u *domain.User) UserView {
	return UserView{
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Phone:        u.Phone,
		Role:         string(u.Role),
		Balance:      money.Format(u.Balance),
		WalletStatus: string(u.WalletStatus),
	}
}
