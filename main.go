package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mogen/config"
	"mogen/model"
	"mogen/provider"
	"mogen/sandbox"
	"mogen/storage"
	"mogen/symbols"
)

const (
	Version = "v0.01.00"
	License = "Apache-2.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	config.InitDebugLog(cfg.DataDir())

	sessionStorage, err := storage.NewSessionStorage(cfg.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize session storage: %v\n", err)
		os.Exit(1)
	}

	library, err := storage.NewOverlayLibrary(cfg.DataDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open overlay library: %v\n", err)
		os.Exit(1)
	}
	defer library.Close()

	providers := provider.InitializeProviders(cfg)
	active := provider.SelectProvider(cfg, providers)
	if active == nil {
		fmt.Fprintln(os.Stderr, "No generation provider available. Check your configuration.")
		os.Exit(1)
	}

	conv := model.NewConversation(active, symbols.NewIndex())

	session := resumeOrCreateSession(sessionStorage, conv)
	defer func() {
		persistSession(sessionStorage, session, conv)
		_ = sessionStorage.UnlockSession(session.ID)
	}()

	fmt.Printf("mogen %s - model: %s\n", Version, active.GetDisplayName())
	fmt.Println("Describe an overlay, or /help for commands.")

	repl(cfg, conv, session, sessionStorage, library)
}

func resumeOrCreateSession(store *storage.SessionStorage, conv *model.Conversation) *storage.Session {
	if id, err := store.LoadCurrentSessionID(); err == nil {
		locked, lockErr := store.CheckSessionLock(id)
		if lockErr == nil && !locked {
			if session, err := store.Load(id); err == nil {
				conv.CurrentProgram = session.CurrentProgram
				conv.CurrentLayout = session.Layout
				conv.Brand = session.Brand
				for i := range session.Entries {
					conv.Entries = append(conv.Entries, &session.Entries[i])
				}
				_ = store.LockSession(session.ID)
				return session
			}
		}
	}

	session := &storage.Session{ID: uuid.New().String()}
	_ = store.LockSession(session.ID)
	return session
}

func persistSession(store *storage.SessionStorage, session *storage.Session, conv *model.Conversation) {
	session.Entries = session.Entries[:0]
	for _, entry := range conv.Entries {
		session.Entries = append(session.Entries, *entry)
	}
	session.CurrentProgram = conv.CurrentProgram
	session.Layout = conv.CurrentLayout
	session.Brand = conv.Brand
	session.Model = conv.Provider.GetModel()
	if session.Name == "" && len(conv.Entries) > 0 {
		session.Name = storage.GenerateSessionName(conv.Entries[0].Content)
	}
	if err := store.Save(session); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save session: %v\n", err)
		return
	}
	_ = store.SaveCurrentSessionID(session.ID)
}

func repl(cfg *config.Config, conv *model.Conversation, session *storage.Session, store *storage.SessionStorage, library *storage.OverlayLibrary) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(cfg, conv, session, store, library, line); quit {
				return
			}
			continue
		}

		submit(conv, line)
		persistSession(store, session, conv)
	}
}

func submit(conv *model.Conversation, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := conv.Submit(ctx, text, false, nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	printLastEntry(conv)
}

func printLastEntry(conv *model.Conversation) {
	entry := conv.LastEntry()
	if entry == nil {
		return
	}

	switch entry.Role {
	case model.RoleClarification:
		fmt.Println("The model needs more detail before generating:")
		for i, q := range entry.Questions {
			fmt.Printf("  %d. ", i+1)
			if q.Header != "" {
				fmt.Printf("[%s] ", q.Header)
			}
			fmt.Println(q.Text)
			for _, opt := range q.Options {
				fmt.Printf("       - %s: %s\n", opt.ID, opt.Label)
			}
		}
		fmt.Println("Answer with /answer <question#> <option-id or free text>.")

	default:
		if entry.Content != "" {
			fmt.Println(entry.Content)
		}
		if entry.IsError {
			return
		}
		if conv.CurrentResult != nil && conv.CurrentResult.OK() {
			fmt.Println("(program updated - /frame <n> to inspect a frame)")
		}
	}
}

func runCommand(cfg *config.Config, conv *model.Conversation, session *storage.Session, store *storage.SessionStorage, library *storage.OverlayLibrary, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Println(`Commands:
  /answer <question#> <answer>  answer a pending clarification
  /program                      print the current overlay program
  /frame <n>                    render frame n of the current program
  /save <name>                  save the current overlay to the library
  /library                      list saved overlays
  /sessions                     list stored sessions
  /rename <name>                rename the current session
  /export [path]                export the current session to JSON
  /delete-session <id>          delete a stored session
  /search <query>               search all session transcripts
  /provider <id> <field> <val>  set a provider field (host/model/apikey/enabled)
  /security [method] [keypath]  show or set credential storage (plaintext/ssh_key)
  /quit                         exit`)

	case "/answer":
		if len(args) < 2 {
			fmt.Println("Usage: /answer <question#> <answer>")
			break
		}
		idx, err := strconv.Atoi(args[0])
		if err != nil || idx < 1 {
			fmt.Println("Question number must be a positive integer.")
			break
		}
		entry := lastClarification(conv)
		if entry == nil {
			fmt.Println("No pending clarification.")
			break
		}
		answer := strings.Join(args[1:], " ")
		done, err := conv.Answer(context.Background(), entry.ID, idx-1, answer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		if done {
			printLastEntry(conv)
			persistSession(store, session, conv)
		} else {
			fmt.Println("Recorded. More questions remain.")
		}

	case "/program":
		if conv.CurrentProgram == "" {
			fmt.Println("No program yet.")
			break
		}
		fmt.Println(conv.CurrentProgram)

	case "/frame":
		if conv.CurrentResult == nil || !conv.CurrentResult.OK() {
			fmt.Println("No evaluated program yet.")
			break
		}
		frame := 0
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				frame = n
			}
		}
		node := conv.CurrentResult.Frame(sandbox.FrameInput{
			Frame:            frame,
			DurationInFrames: cfg.Render.DurationInFrames,
			Width:            cfg.Render.Width,
			Height:           cfg.Render.Height,
		})
		out, err := json.MarshalIndent(node, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Println(string(out))

	case "/save":
		if conv.CurrentProgram == "" {
			fmt.Println("No program to save.")
			break
		}
		name := strings.Join(args, " ")
		if name == "" {
			fmt.Println("Usage: /save <name>")
			break
		}
		layoutJSON := ""
		if conv.CurrentLayout != nil {
			if data, err := json.Marshal(conv.CurrentLayout); err == nil {
				layoutJSON = string(data)
			}
		}
		now := time.Now()
		err := library.Save(storage.SavedOverlay{
			ID:            uuid.New().String(),
			Name:          name,
			Program:       conv.CurrentProgram,
			LayoutJSON:    layoutJSON,
			SourceSession: session.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Printf("Saved %q to the overlay library.\n", name)

	case "/library":
		overlays, err := library.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		if len(overlays) == 0 {
			fmt.Println("Library is empty.")
			break
		}
		for _, o := range overlays {
			fmt.Printf("  %s  %s\n", o.ID, o.Name)
		}

	case "/sessions":
		sessions, err := store.List()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		for _, meta := range sessions {
			marker := " "
			if meta.HasProgram {
				marker = "*"
			}
			fmt.Printf("  %s %s  %s (%d entries)\n", marker, meta.ID, meta.Name, meta.EntryCount)
		}

	case "/rename":
		name := strings.Join(args, " ")
		if name == "" {
			fmt.Println("Usage: /rename <name>")
			break
		}
		persistSession(store, session, conv)
		if err := store.RenameSession(session.ID, name); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		session.Name = name
		fmt.Printf("Session renamed to %q.\n", name)

	case "/export":
		persistSession(store, session, conv)
		path := strings.Join(args, " ")
		if path == "" {
			path = storage.GenerateExportPath(session.Name)
		}
		if err := store.ExportToJSON(session.ID, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Printf("Exported to %s\n", path)

	case "/delete-session":
		if len(args) != 1 {
			fmt.Println("Usage: /delete-session <id>")
			break
		}
		id := args[0]
		if id == session.ID {
			fmt.Println("Cannot delete the active session.")
			break
		}
		if locked, err := store.CheckSessionLock(id); err == nil && locked {
			fmt.Println("Session is in use by another process.")
			break
		}
		if err := store.Delete(id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Println("Session deleted.")

	case "/provider":
		if len(args) < 3 {
			fmt.Println("Usage: /provider <gateway|openai|openrouter|anthropic> <host|model|apikey|enabled> <value>")
			break
		}
		if err := config.UpdateProviderField(cfg.DataDir(), args[0], args[1], strings.Join(args[2:], " ")); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Println("Provider updated. Restart to apply.")

	case "/security":
		if len(args) == 0 {
			fmt.Printf("Credential storage: %s\n", cfg.Security.CredentialStorage)
			if cfg.Security.SSHKeyPath != "" {
				fmt.Printf("SSH key: %s\n", cfg.Security.SSHKeyPath)
			}
			break
		}
		if err := configureSecurity(cfg, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		fmt.Println("Security settings updated. Restart to apply.")

	case "/search":
		if len(args) == 0 {
			fmt.Println("Usage: /search <query>")
			break
		}
		index := storage.NewSearchIndex(store)
		matches, err := index.SearchAllSessions(strings.Join(args, " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		for _, m := range matches {
			fmt.Printf("  [%s] %s: %s\n", m.SessionName, m.Role, m.Preview)
		}

	default:
		fmt.Printf("Unknown command %s - try /help\n", cmd)
	}
	return false
}

func configureSecurity(cfg *config.Config, args []string) error {
	method := args[0]
	if method != string(config.SecurityPlainText) && method != string(config.SecuritySSHKey) {
		return fmt.Errorf("unknown method %q, expected plaintext or ssh_key", method)
	}

	keyPath := ""
	if method == string(config.SecuritySSHKey) {
		switch {
		case len(args) > 1:
			keyPath = args[1]
		case config.MogenKeyExists():
			keyPath = config.GetMogenKeyPath()
		default:
			keys, err := config.FindSSHKeys()
			if err == nil && len(keys) > 0 {
				keyPath = keys[0]
			} else {
				created, err := config.CreateMogenKey("")
				if err != nil {
					return fmt.Errorf("failed to create SSH key: %w", err)
				}
				keyPath = created
				fmt.Printf("Created SSH key at %s\n", created)
			}
		}
	}

	userCfg, err := config.LoadUserConfig(cfg.DataDir())
	if err != nil {
		return err
	}
	userCfg.Security = config.SecurityConfig{CredentialStorage: method, SSHKeyPath: keyPath}
	return config.SaveUserConfig(userCfg, cfg.DataDir())
}

func lastClarification(conv *model.Conversation) *model.ConversationEntry {
	for i := len(conv.Entries) - 1; i >= 0; i-- {
		if conv.Entries[i].Role == model.RoleClarification && !conv.Entries[i].AllAnswered() {
			return conv.Entries[i]
		}
	}
	return nil
}
