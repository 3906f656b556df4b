package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"time"

	"github.com/jrsteele09/panel-console/admins"
	"github.com/jrsteele09/panel-console/dashboard"
	"github.com/jrsteele09/panel-console/inbounds"
	panelerrors "github.com/jrsteele09/panel-console/internal/errors"
	"github.com/jrsteele09/panel-console/internal/utils"
	"github.com/jrsteele09/panel-console/nodes"
	"github.com/jrsteele09/panel-console/templates"
	"github.com/jrsteele09/panel-console/tokens"
	"github.com/jrsteele09/panel-console/users"
	"github.com/rs/zerolog/log"
)

const bytesPerGiB = 1024 * 1024 * 1024

func commandTable() map[string]command {
	return map[string]command{
		"login":     {summary: "sign in and store the token pair", action: "Login", run: loginCmd},
		"logout":    {summary: "[-remote] forget the stored tokens", action: "Logout", run: logoutCmd},
		"me":        {summary: "show the signed in admin", action: "Loading profile", session: sessionRequired, run: meCmd},
		"status":    {summary: "show session and token details", action: "Status", session: sessionOptional, run: statusCmd},
		"dashboard": {summary: "[-strict] show headline numbers", action: "Loading dashboard", session: sessionRequired, run: dashboardCmd},
		"version":   {summary: "print the version", action: "Version", run: versionCmd},
		"users": {sub: map[string]command{
			"list":            {summary: "[-skip n] [-limit n] [-status s] [-search q]", action: "Loading users", session: sessionRequired, run: listUsersCmd},
			"get":             {summary: "<id>", action: "Loading user", session: sessionRequired, run: getByID("user", getUser)},
			"create":          {summary: "-username u -password p [-email e] [-limit-gb n] [-expire-at t] [-description d]", action: "Creating user", session: sessionRequired, run: createUserCmd},
			"delete":          {summary: "<id>", action: "Deleting user", session: sessionRequired, run: deleteByID("user", deleteUser)},
			"reset-traffic":   {summary: "<id>", action: "Resetting traffic", session: sessionRequired, run: getByID("user", resetTraffic)},
			"revoke-sub":      {summary: "<id>", action: "Revoking subscription", session: sessionRequired, run: getByID("user", revokeSubscription)},
			"proxies":         {summary: "<id>", action: "Loading proxies", session: sessionRequired, run: getByID("user", userProxies)},
			"inbounds":        {summary: "<id>", action: "Loading user inbounds", session: sessionRequired, run: getByID("user", userInbounds)},
			"assign-inbounds": {summary: "<id> <inbound-id>...", action: "Assigning inbounds", session: sessionRequired, run: assignInboundsCmd},
		}},
		"nodes": {sub: map[string]command{
			"list":         {summary: "[-skip n] [-limit n] [-online]", action: "Loading nodes", session: sessionRequired, run: listNodesCmd},
			"get":          {summary: "<id>", action: "Loading node", session: sessionRequired, run: getByID("node", getNode)},
			"delete":       {summary: "<id>", action: "Deleting node", session: sessionRequired, run: deleteByID("node", deleteNode)},
			"connect":      {summary: "<id>", action: "Connecting node", session: sessionRequired, run: getByID("node", connectNode)},
			"disconnect":   {summary: "<id>", action: "Disconnecting node", session: sessionRequired, run: getByID("node", disconnectNode)},
			"generate-ssl": {summary: "-name n -address a", action: "Generating certificate", session: sessionRequired, run: generateSSLCmd},
		}},
		"inbounds": {sub: map[string]command{
			"list":   {summary: "[-skip n] [-limit n]", action: "Loading inbounds", session: sessionRequired, run: listInboundsCmd},
			"get":    {summary: "<id>", action: "Loading inbound", session: sessionRequired, run: getByID("inbound", getInbound)},
			"delete": {summary: "<id>", action: "Deleting inbound", session: sessionRequired, run: deleteByID("inbound", deleteInbound)},
		}},
		"admins": {sub: map[string]command{
			"list": {summary: "list panel admins", action: "Loading admins", session: sessionRequired, run: listAdminsCmd},
		}},
		"templates": {sub: map[string]command{
			"list":         {summary: "list inbound templates", action: "Loading templates", session: sessionRequired, run: listTemplatesCmd},
			"generate":     {summary: "-port n [-tag t] [-domain d] <template-id>", action: "Generating inbound", session: sessionRequired, run: generateTemplateCmd},
			"reality-keys": {summary: "generate a Reality key pair", action: "Generating keys", session: sessionRequired, run: realityKeysCmd},
			"short-ids":    {summary: "[-count n]", action: "Generating short ids", session: sessionRequired, run: shortIDsCmd},
		}},
	}
}

func newFlagSet(a *app, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func loginCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "login")
	username := fs.String("username", "", "admin username (prompted when empty)")
	password := fs.String("password", "", "admin password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.banner(a.stdout, a.cfg.GetAppName())

	var err error
	if *username == "" {
		if *username, err = a.prompt("Username: "); err != nil {
			return err
		}
	}
	if *password == "" {
		if *password, err = a.readPassword(); err != nil {
			return err
		}
	}

	session, err := a.store.Login(ctx, *username, *password)
	if err != nil {
		return err
	}

	var admin admins.Admin
	if err := session.DecodeIdentity(&admin); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged in as %s\n", admin.Username)
	return nil
}

func logoutCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "logout")
	remote := fs.Bool("remote", false, "also tell the panel the session ended")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *remote {
		if _, ok, _ := tokens.AccessToken(a.tokens); ok {
			if err := a.authAPI.Logout(ctx); err != nil {
				log.Warn().Err(err).Msg("remote logout failed, clearing local session anyway")
			}
		}
	}
	a.store.Logout()
	fmt.Fprintln(a.stdout, "Logged out")
	return nil
}

func meCmd(_ context.Context, a *app, _ []string) error {
	var admin admins.Admin
	if err := a.store.Current().DecodeIdentity(&admin); err != nil {
		return err
	}
	return a.printJSON(admin)
}

type statusReport struct {
	BaseURL        string     `json:"base_url"`
	State          string     `json:"state"`
	Authenticated  bool       `json:"authenticated"`
	Username       string     `json:"username,omitempty"`
	TokenFile      string     `json:"token_file"`
	TokenSubject   string     `json:"token_subject,omitempty"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	TokenExpired   *bool      `json:"token_expired,omitempty"`
}

func statusCmd(_ context.Context, a *app, _ []string) error {
	session := a.store.Current()
	baseURL := a.client.BaseURL()

	report := statusReport{
		BaseURL:       baseURL.String(),
		State:         session.State.String(),
		Authenticated: session.IsAuthenticated,
		TokenFile:     a.tokens.Path(),
	}

	var admin admins.Admin
	if err := session.DecodeIdentity(&admin); err == nil {
		report.Username = admin.Username
	}

	pair, ok, err := tokens.Load(a.tokens)
	if err != nil {
		return err
	}
	if ok {
		claims, err := tokens.ParseClaims(pair.AccessToken)
		if err != nil {
			log.Debug().Err(err).Msg("access token is not a readable JWT")
		} else {
			report.TokenSubject = claims.Subject
			if !claims.ExpiresAt.IsZero() {
				report.TokenExpiresAt = utils.Ptr(claims.ExpiresAt)
				report.TokenExpired = utils.Ptr(claims.Expired(time.Now()))
			}
		}
	}
	return a.printJSON(report)
}

func dashboardCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "dashboard")
	strict := fs.Bool("strict", false, "fail instead of showing zeros when a list cannot be loaded")
	if err := fs.Parse(args); err != nil {
		return err
	}

	src := dashboard.Sources{Users: a.users, Nodes: a.nodes, Inbounds: a.inbounds}
	if !*strict {
		return a.printJSON(dashboard.LoadOrEmpty(ctx, src))
	}
	summary, err := dashboard.Load(ctx, src)
	if err != nil {
		return err
	}
	return a.printJSON(summary)
}

func versionCmd(_ context.Context, a *app, _ []string) error {
	fmt.Fprintf(a.stdout, "panelctl %s\n", version)
	return nil
}

func listUsersCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "users list")
	skip := fs.Int("skip", 0, "number of users to skip")
	limit := fs.Int("limit", 0, "page size")
	status := fs.String("status", "", "ACTIVE, DISABLED, LIMITED or EXPIRED")
	search := fs.String("search", "", "username filter")
	if err := fs.Parse(args); err != nil {
		return err
	}

	resp, err := a.users.List(ctx, users.ListParams{Skip: *skip, Limit: *limit, Status: users.Status(*status), Search: *search})
	if err != nil {
		return err
	}
	return a.printJSON(resp)
}

func createUserCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "users create")
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	email := fs.String("email", "", "contact email")
	limitGB := fs.Float64("limit-gb", 0, "traffic limit in GiB, 0 for unlimited")
	expireAt := fs.String("expire-at", "", "expiry as YYYY-MM-DDTHH:MM:SS")
	description := fs.String("description", "", "free text note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return panelerrors.Wrapf(panelerrors.ErrMissingArgument, "-username and -password are required")
	}

	req := users.CreateRequest{Username: *username, Password: *password}
	if *email != "" {
		req.Email = utils.Ptr(*email)
	}
	if *limitGB > 0 {
		req.TrafficLimitBytes = utils.Ptr(int64(*limitGB * bytesPerGiB))
	}
	if *expireAt != "" {
		req.ExpireAt = utils.Ptr(*expireAt)
	}
	if *description != "" {
		req.Description = utils.Ptr(*description)
	}

	user, err := a.users.Create(ctx, req)
	if err != nil {
		return err
	}
	return a.printJSON(user)
}

func assignInboundsCmd(ctx context.Context, a *app, args []string) error {
	userID, err := parseID(args, "user")
	if err != nil {
		return err
	}
	inboundIDs := make([]int, 0, len(args)-1)
	for _, arg := range args[1:] {
		id, err := parseID([]string{arg}, "inbound")
		if err != nil {
			return err
		}
		inboundIDs = append(inboundIDs, id)
	}

	result, err := a.users.AssignInbounds(ctx, userID, inboundIDs)
	if err != nil {
		return err
	}
	return a.printJSON(result)
}

func getUser(ctx context.Context, a *app, id int) (any, error) {
	return a.users.Get(ctx, id)
}

func deleteUser(ctx context.Context, a *app, id int) error {
	return a.users.Delete(ctx, id)
}

func resetTraffic(ctx context.Context, a *app, id int) (any, error) {
	return a.users.ResetTraffic(ctx, id)
}

func revokeSubscription(ctx context.Context, a *app, id int) (any, error) {
	return a.users.RevokeSubscription(ctx, id)
}

func userProxies(ctx context.Context, a *app, id int) (any, error) {
	return a.users.Proxies(ctx, id)
}

func userInbounds(ctx context.Context, a *app, id int) (any, error) {
	return a.users.Inbounds(ctx, id)
}

func listNodesCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "nodes list")
	skip := fs.Int("skip", 0, "number of nodes to skip")
	limit := fs.Int("limit", 0, "page size")
	online := fs.Bool("online", false, "only connected nodes")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.nodes.List(ctx, nodes.ListParams{Skip: *skip, Limit: *limit, OnlineOnly: *online})
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func generateSSLCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "nodes generate-ssl")
	name := fs.String("name", "", "node name")
	address := fs.String("address", "", "node IP or domain")
	if err := fs.Parse(args); err != nil {
		return err
	}

	bundle, err := a.nodes.GenerateSSL(ctx, *name, *address)
	if err != nil {
		return err
	}
	return a.printJSON(bundle)
}

func getNode(ctx context.Context, a *app, id int) (any, error) {
	return a.nodes.Get(ctx, id)
}

func deleteNode(ctx context.Context, a *app, id int) error {
	return a.nodes.Delete(ctx, id)
}

func connectNode(ctx context.Context, a *app, id int) (any, error) {
	return a.nodes.Connect(ctx, id)
}

func disconnectNode(ctx context.Context, a *app, id int) (any, error) {
	return a.nodes.Disconnect(ctx, id)
}

func listInboundsCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "inbounds list")
	skip := fs.Int("skip", 0, "number of inbounds to skip")
	limit := fs.Int("limit", 0, "page size")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.inbounds.List(ctx, inbounds.ListParams{Skip: *skip, Limit: *limit})
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func getInbound(ctx context.Context, a *app, id int) (any, error) {
	return a.inbounds.Get(ctx, id)
}

func deleteInbound(ctx context.Context, a *app, id int) error {
	return a.inbounds.Delete(ctx, id)
}

func listAdminsCmd(ctx context.Context, a *app, _ []string) error {
	list, err := a.admins.List(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func listTemplatesCmd(ctx context.Context, a *app, _ []string) error {
	list, err := a.templates.List(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(list)
}

func generateTemplateCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "templates generate")
	port := fs.Int("port", 443, "listen port")
	tag := fs.String("tag", "", "inbound tag, generated when empty")
	domain := fs.String("domain", "", "server domain")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return panelerrors.Wrapf(panelerrors.ErrMissingArgument, "template id")
	}

	result, err := a.templates.Generate(ctx, fs.Arg(0), templates.GenerateParams{Port: *port, Tag: *tag, Domain: *domain})
	if err != nil {
		return err
	}
	return a.printJSON(result)
}

func realityKeysCmd(ctx context.Context, a *app, _ []string) error {
	keys, err := a.templates.RealityKeys(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(keys)
}

func shortIDsCmd(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet(a, "templates short-ids")
	count := fs.Int("count", 0, "how many ids, backend default when 0")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ids, err := a.templates.ShortIDs(ctx, *count)
	if err != nil {
		return err
	}
	return a.printJSON(ids)
}

func getByID(what string, fn func(ctx context.Context, a *app, id int) (any, error)) handler {
	return func(ctx context.Context, a *app, args []string) error {
		id, err := parseID(args, what)
		if err != nil {
			return err
		}
		out, err := fn(ctx, a, id)
		if err != nil {
			return err
		}
		return a.printJSON(out)
	}
}

func deleteByID(what string, fn func(ctx context.Context, a *app, id int) error) handler {
	return func(ctx context.Context, a *app, args []string) error {
		id, err := parseID(args, what)
		if err != nil {
			return err
		}
		if err := fn(ctx, a, id); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Deleted %s %d\n", what, id)
		return nil
	}
}

func parseID(args []string, what string) (int, error) {
	if len(args) == 0 {
		return 0, panelerrors.Wrapf(panelerrors.ErrMissingArgument, "%s id", what)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, args[0])
	}
	return id, nil
}
