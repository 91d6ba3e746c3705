package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/sharezin/internal/plan"
	"github.com/mmynk/sharezin/pkg/api"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	ana := env.register(t, "Ana")

	me, err := ana.auth.GetCurrentUser.CallUnary(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		t.Fatalf("GetCurrentUser failed: %v", err)
	}
	if me.Msg.User.ID != ana.ID || me.Msg.User.DisplayName != "Ana" {
		t.Errorf("unexpected user: %+v", me.Msg.User)
	}

	anon := api.NewAuthServiceClient(env.server.Client(), env.server.URL)
	login, err := anon.Login.CallUnary(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "ANA@example.com ",
		Password: "password123",
	}))
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if login.Msg.Token == "" {
		t.Error("expected token")
	}

	_, err = anon.Login.CallUnary(context.Background(), connect.NewRequest(&api.LoginRequest{
		Email:    "ana@example.com",
		Password: "wrong-password",
	}))
	assertCode(t, err, connect.CodeUnauthenticated)

	_, err = anon.GetCurrentUser.CallUnary(context.Background(), connect.NewRequest(&api.GetCurrentUserRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestRegister_Errors(t *testing.T) {
	env := setupTestServer(t, plan.Limits{})
	env.register(t, "Ana")
	client := api.NewAuthServiceClient(env.server.Client(), env.server.URL)

	tests := []struct {
		name string
		req  *api.RegisterRequest
		code connect.Code
	}{
		{"duplicate email", &api.RegisterRequest{Email: "ana@example.com", DisplayName: "Ana", Password: "password123"}, connect.CodeAlreadyExists},
		{"weak password", &api.RegisterRequest{Email: "bo@example.com", DisplayName: "Bo", Password: "short"}, connect.CodeInvalidArgument},
		{"missing name", &api.RegisterRequest{Email: "cy@example.com", Password: "password123"}, connect.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Register.CallUnary(context.Background(), connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}
