// Package viewer resolves the requesting user into the identity the
// visibility rules consume.
package viewer

import (
	"redacao-app/database"
	"redacao-app/internal/domain/identity"
	"redacao-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// Current loads the authenticated user with their cohort. Callers get a
// visitor identity for students who are not enrolled anywhere.
func Current(c *gin.Context) (users.User, identity.Identity, error) {
	var user users.User
	err := database.DB.Preload("Cohort").First(&user, c.GetUint("user_id")).Error
	if err != nil {
		return users.User{}, identity.Visitor(), err
	}
	return user, user.Identity(), nil
}
