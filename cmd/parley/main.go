// Command parley is a terminal front end for the Parley forum. It wires
// the session store, gateway and view controllers together and drives them
// from a line-oriented prompt; every content decision is made by the
// library, never here.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"parley/client/internal/config"
	"parley/client/internal/gateway"
	"parley/client/internal/model"
	"parley/client/internal/rbac"
	"parley/client/internal/session"
	"parley/client/internal/view"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	backend, closeBackend, err := newPersistence(cfg)
	if err != nil {
		log.Fatalf("session backend failed: %v", err)
	}
	if closeBackend != nil {
		defer closeBackend()
	}

	sessions := session.NewStore(ctx, backend)
	client := gateway.New(cfg.APIURL, cfg.HTTPTimeout)

	app := &app{
		ctx:      ctx,
		cfg:      cfg,
		client:   client,
		sessions: sessions,
		in:       bufio.NewScanner(os.Stdin),
	}
	app.run()
}

func newPersistence(cfg config.Config) (session.Persistence, func(), error) {
	switch cfg.SessionBackend {
	case "memory":
		return session.NewMemoryStore(), nil, nil
	case "file":
		return session.NewFileStore(cfg.SessionFile), nil, nil
	case "redis":
		store, err := session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

type app struct {
	ctx      context.Context
	cfg      config.Config
	client   *gateway.Client
	sessions *session.Store
	in       *bufio.Scanner
}

func (a *app) run() {
	fmt.Println("parley — type 'help' for commands")
	topics := view.NewTopicView(a.client, a.sessions)
	search := view.NewDebouncer(a.cfg.Debounce, func(query string) {
		if err := topics.Load(a.ctx, query); err == nil {
			a.printTopics(topics)
		}
	})
	defer search.Close()
	defer topics.Invalidate()

	if err := topics.Load(a.ctx, ""); err != nil {
		fmt.Println("error:", topics.LastError())
	} else {
		a.printTopics(topics)
	}

	for {
		line, ok := a.prompt("parley> ")
		if !ok {
			return
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "", "help":
			fmt.Println("commands: topics, search <q>, open <topic-id>, new, login, signup, logout, whoami, quit")
		case "topics":
			if err := topics.Load(a.ctx, ""); err != nil {
				fmt.Println("error:", topics.LastError())
				continue
			}
			a.printTopics(topics)
		case "search":
			search.OnQueryChange(arg)
		case "open":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("usage: open <topic-id>")
				continue
			}
			a.topicLoop(id)
		case "new":
			a.createTopic(topics)
		case "login":
			a.login()
		case "signup":
			a.signup()
		case "logout":
			a.sessions.Clear(a.ctx)
			fmt.Println("logged out")
		case "whoami":
			if u := a.sessions.Current(); u != nil {
				fmt.Printf("%s (%s)\n", u.Username, u.Role)
			} else {
				fmt.Println("anonymous")
			}
		case "quit", "exit":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func (a *app) topicLoop(topicID int) {
	posts := view.NewPostView(a.client, a.sessions, topicID)
	defer posts.Invalidate()
	search := view.NewDebouncer(a.cfg.Debounce, func(query string) {
		if err := posts.Load(a.ctx, query); err == nil {
			a.printPosts(posts)
		}
	})
	defer search.Close()

	if err := posts.Load(a.ctx, ""); err != nil {
		fmt.Println("error:", posts.LastError())
		if posts.Topic() == nil {
			return
		}
	}
	a.printPosts(posts)

	for {
		line, ok := a.prompt(fmt.Sprintf("topic:%d> ", topicID))
		if !ok {
			return
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "", "help":
			fmt.Println("commands: posts, search <q>, open <post-id>, new, edit <post-id>, del <post-id>, back")
		case "posts":
			if err := posts.Load(a.ctx, ""); err != nil {
				fmt.Println("error:", posts.LastError())
				continue
			}
			a.printPosts(posts)
		case "search":
			search.OnQueryChange(arg)
		case "open":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("usage: open <post-id>")
				continue
			}
			a.postLoop(id)
		case "new":
			title, _ := a.prompt("title: ")
			body, _ := a.prompt("body: ")
			if _, err := posts.Create(a.ctx, title, body); err != nil {
				a.report(err, posts.LastError())
				continue
			}
			a.printPosts(posts)
		case "edit":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("usage: edit <post-id>")
				continue
			}
			title, _ := a.prompt("new title: ")
			body, _ := a.prompt("new body: ")
			if _, err := posts.Update(a.ctx, id, title, body); err != nil {
				a.report(err, posts.LastError())
			}
		case "del":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("usage: del <post-id>")
				continue
			}
			if !a.confirm("Delete this post? [y/N] ") {
				continue
			}
			if err := posts.Remove(a.ctx, id); err != nil {
				a.report(err, posts.LastError())
			}
		case "back":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func (a *app) postLoop(postID int) {
	comments := view.NewCommentView(a.client, a.sessions, postID)
	defer comments.Invalidate()

	if err := comments.Load(a.ctx); err != nil {
		fmt.Println("error:", comments.LastError())
		if comments.Post() == nil {
			return
		}
	}
	a.printPost(comments)

	for {
		line, ok := a.prompt(fmt.Sprintf("post:%d> ", postID))
		if !ok {
			return
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "", "help":
			fmt.Println("commands: show, comment, reply <comment-id>, edit <comment-id>, del <comment-id>, editpost, delpost, back")
		case "show":
			if err := comments.Load(a.ctx); err != nil {
				fmt.Println("error:", comments.LastError())
				continue
			}
			a.printPost(comments)
		case "comment":
			body, _ := a.prompt("comment: ")
			if _, err := comments.Create(a.ctx, body, 0); err != nil {
				a.report(err, comments.LastError())
			}
		case "reply":
			parentID, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("usage: reply <comment-id>")
				continue
			}
			body, _ := a.prompt("reply: ")
			if _, err := comments.Create(a.ctx, body, parentID); err != nil {
				a.report(err, comments.LastError())
			}
		case "edit":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("usage: edit <comment-id>")
				continue
			}
			body, _ := a.prompt("new body: ")
			if _, err := comments.Update(a.ctx, id, body); err != nil {
				a.report(err, comments.LastError())
			}
		case "del":
			id, err := strconv.Atoi(arg)
			if err != nil {
				fmt.Println("usage: del <comment-id>")
				continue
			}
			if !a.confirm("Delete this comment? [y/N] ") {
				continue
			}
			if err := comments.Remove(a.ctx, id); err != nil {
				a.report(err, comments.LastError())
			}
		case "editpost":
			title, _ := a.prompt("new title: ")
			body, _ := a.prompt("new body: ")
			if _, err := comments.UpdatePost(a.ctx, title, body); err != nil {
				a.report(err, comments.LastError())
			}
		case "delpost":
			if !a.confirm("Delete this post? [y/N] ") {
				continue
			}
			if err := comments.RemovePost(a.ctx); err != nil {
				a.report(err, comments.LastError())
				continue
			}
			return
		case "back":
			return
		default:
			fmt.Println("unknown command:", cmd)
		}
	}
}

func (a *app) createTopic(topics *view.TopicView) {
	title, _ := a.prompt("title: ")
	description, _ := a.prompt("description (optional): ")
	if _, err := topics.Create(a.ctx, title, description); err != nil {
		a.report(err, topics.LastError())
		return
	}
	a.printTopics(topics)
}

func (a *app) login() {
	username, _ := a.prompt("username: ")
	password, _ := a.prompt("password: ")
	creds, err := model.ValidateLoginCredentials(username, password)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	user, err := a.client.Login(a.ctx, creds)
	if err != nil {
		fmt.Println("error:", gateway.Normalize(err))
		return
	}
	a.sessions.Set(a.ctx, user)
	fmt.Printf("welcome, %s\n", user.Username)
}

func (a *app) signup() {
	username, _ := a.prompt("username: ")
	password, _ := a.prompt("password (min 8 chars): ")
	creds, err := model.ValidateCredentials(username, password)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := a.client.Signup(a.ctx, creds); err != nil {
		fmt.Println("error:", gateway.Normalize(err))
		return
	}
	fmt.Println("account created; log in to continue")
}

func (a *app) printTopics(topics *view.TopicView) {
	list := topics.Topics()
	fmt.Printf("%d topic(s)\n", len(list))
	for _, t := range list {
		tag := ""
		if t.Official() {
			tag = " [official]"
		}
		by := ""
		if t.Author != nil {
			by = " by " + t.Author.Username
		}
		fmt.Printf("  #%d %s%s%s\n", t.ID, t.Title, tag, by)
	}
}

func (a *app) printPosts(posts *view.PostView) {
	if t := posts.Topic(); t != nil {
		fmt.Printf("== %s ==\n", t.Title)
	}
	viewer := a.sessions.Current()
	for _, p := range posts.Posts() {
		marks := ""
		if p.Edited() {
			marks = " (edited)"
		}
		if rbac.CanEdit(viewer, p.UserID) {
			marks += " [editable]"
		}
		fmt.Printf("  #%d %s%s\n", p.ID, p.Title, marks)
	}
}

func (a *app) printPost(comments *view.CommentView) {
	p := comments.Post()
	if p == nil {
		return
	}
	edited := ""
	if p.Edited() {
		edited = " (edited)"
	}
	fmt.Printf("== %s%s ==\n%s\n", p.Title, edited, p.Body)
	for _, c := range comments.Comments() {
		marks := ""
		if c.Edited() {
			marks = " (edited)"
		}
		who := fmt.Sprintf("user %d", c.UserID)
		if c.Author != nil {
			who = c.Author.Username
		}
		fmt.Printf("  #%d %s%s: %s\n", c.ID, who, marks, c.Body)
	}
}

// report prints the failure most useful to the user: the routing signals
// by name, everything else via the controller's normalized message.
func (a *app) report(err error, lastErr string) {
	fmt.Println(failureMessage(err, lastErr))
}

// failureMessage picks the display line for a failed action. Failures that
// never reach the gateway are named directly; only remote failures fall
// back to the controller's normalized last-error message.
func failureMessage(err error, lastErr string) string {
	switch {
	case errors.Is(err, view.ErrAuthRequired):
		return "please log in first"
	case errors.Is(err, view.ErrPermissionDenied):
		return "you do not have permission to do that"
	case errors.Is(err, view.ErrUnknownContent):
		return "error: " + err.Error()
	}
	var vErr *model.ValidationError
	if errors.As(err, &vErr) {
		return "error: " + vErr.Reason
	}
	if lastErr != "" {
		return "error: " + lastErr
	}
	return fmt.Sprintf("error: %v", err)
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Print(label)
	if !a.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *app) confirm(label string) bool {
	answer, ok := a.prompt(label)
	return ok && strings.EqualFold(answer, "y")
}

func splitCommand(line string) (string, string) {
	parts := strings.SplitN(line, " ", 2)
	cmd := strings.ToLower(strings.TrimSpace(parts[0]))
	arg := ""
	if len(parts) == 2 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg
}
