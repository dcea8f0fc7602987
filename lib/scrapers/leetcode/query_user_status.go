package leetcode

import (
	"context"
)

const userStatusQuery = `
query globalData {
  userStatus {
    isSignedIn
    username
    isPremium
  }
}
`

type UserStatus struct {
	IsSignedIn bool   `json:"isSignedIn"`
	Username   string `json:"username"`
	IsPremium  bool   `json:"isPremium"`
}

func (c *Client) UserStatus(ctx context.Context) (UserStatus, error) {
	var out struct {
		UserStatus UserStatus `json:"userStatus"`
	}
	err := c.graphql(ctx, "globalData", userStatusQuery, struct{}{}, &out)
	if err != nil {
		return UserStatus{}, err
	}
	return out.UserStatus, nil
}
