package graph

import (
	"context"
	"errors"

	"github.com/graph-gophers/graphql-go"

	"usergraph/internal/app/account"
	"usergraph/internal/app/user"
	"usergraph/internal/pkg/auth/jwt"
	"usergraph/internal/pkg/errs"
)

const (
	helloReply = "Hello world!"
	testReply  = "I am world"
)

// AccountService is the registration entry point the mutation calls.
type AccountService interface {
	CreateUser(ctx context.Context, username, name, password string) (account.Result, error)
}

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	accounts   AccountService
	exposeHash bool
}

// NewResolver returns the root resolver. exposeHash controls whether User.password
// returns the stored hash or null.
func NewResolver(accounts AccountService, exposeHash bool) *Resolver {
	return &Resolver{
		accounts:   accounts,
		exposeHash: exposeHash,
	}
}

func (r *Resolver) Hello() *string {
	s := helloReply
	return &s
}

func (r *Resolver) Test() *string {
	s := testReply
	return &s
}

func (r *Resolver) Me(ctx context.Context) *string {
	payload := jwt.PayloadFromContext(ctx)
	if payload == nil {
		return nil
	}
	return &payload.ID
}

type createUserArgs struct {
	Username string
	Name     string
	Password string
}

func (r *Resolver) CreateUser(ctx context.Context, args createUserArgs) (*CreateUserResultResolver, error) {
	if isReadOnly(ctx) {
		return nil, &gqlError{message: "Mutations must be sent with POST.", code: errs.ErrMethodNotAllowed}
	}

	res, err := r.accounts.CreateUser(ctx, args.Username, args.Name, args.Password)
	if err != nil {
		return nil, toGraphQLError(err)
	}

	switch res.Outcome {
	case account.OutcomeCreated:
		return &CreateUserResultResolver{result: &UserCreatedResolver{
			user:  &UserResolver{u: res.User, exposeHash: r.exposeHash},
			token: res.Token,
		}}, nil
	case account.OutcomeConflict:
		return &CreateUserResultResolver{result: &UsernameTakenResolver{username: res.Username}}, nil
	default:
		return nil, toGraphQLError(errors.New("unexpected registration outcome " + res.Outcome.String()))
	}
}

// CreateUserResultResolver resolves the CreateUserResult union.
type CreateUserResultResolver struct {
	result interface{}
}

func (r *CreateUserResultResolver) ToUserCreated() (*UserCreatedResolver, bool) {
	res, ok := r.result.(*UserCreatedResolver)
	return res, ok
}

func (r *CreateUserResultResolver) ToUsernameTaken() (*UsernameTakenResolver, bool) {
	res, ok := r.result.(*UsernameTakenResolver)
	return res, ok
}

type UserCreatedResolver struct {
	user  *UserResolver
	token string
}

func (r *UserCreatedResolver) User() *UserResolver {
	return r.user
}

func (r *UserCreatedResolver) Token() string {
	return r.token
}

type UsernameTakenResolver struct {
	username string
}

func (r *UsernameTakenResolver) Username() string {
	return r.username
}

func (r *UsernameTakenResolver) Message() string {
	return errs.NewError(errs.ErrUserAlreadyExists).Message
}

type UserResolver struct {
	u          *user.User
	exposeHash bool
}

func (r *UserResolver) ID() graphql.ID {
	return graphql.ID(r.u.ID)
}

func (r *UserResolver) Username() string {
	return r.u.Username
}

func (r *UserResolver) Name() string {
	return r.u.Name
}

func (r *UserResolver) Password() *string {
	if !r.exposeHash {
		return nil
	}
	return &r.u.PasswordHash
}
