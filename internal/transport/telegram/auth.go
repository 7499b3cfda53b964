package telegram

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"
	"github.com/samber/oops"
)

// terminalAuth prompts on stdin for the interactive parts of the login
// flow. A configured phone number skips the first prompt. Prompt reads
// surface io.EOF when no interactive terminal is attached.
type terminalAuth struct {
	phone string
}

func (a terminalAuth) Phone(ctx context.Context) (string, error) {
	if a.phone != "" {
		return a.phone, nil
	}
	return prompt("Enter phone number (international format): ")
}

func (a terminalAuth) Code(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
	return prompt("Enter the code you received: ")
}

func (a terminalAuth) Password(ctx context.Context) (string, error) {
	return prompt("Enter 2FA password: ")
}

func (a terminalAuth) AcceptTermsOfService(ctx context.Context, tos tg.HelpTermsOfService) error {
	return nil
}

func (a terminalAuth) SignUp(ctx context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, oops.Errorf("signing up new accounts is not supported")
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
