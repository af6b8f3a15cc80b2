// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// kb_cmd.go - knowledge base management command.
//
// Examples:
//   jarvis kb list --category technical
//   jarvis kb search "virtual environments" --top-k 3
//   jarvis kb add --title "Git Workflow" --content "Branch from main..." --tags "git, workflow"
//   jarvis kb edit 12 --tags "git, review"
//   jarvis kb rm 12 --yes
//   jarvis kb import notes.md --category technical --rate 5

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/jarvis-tui/internal/api"
	"github.com/jeranaias/jarvis-tui/internal/kbimport"
	"github.com/jeranaias/jarvis-tui/internal/model"
	"github.com/jeranaias/jarvis-tui/internal/util"
)

const kbUsage = "jarvis kb list|get|search|add|edit|rm|import|seed"

// kbBoolFlags take no value.
var kbBoolFlags = []string{"yes", "y", "dry-run"}

// RunKB dispatches a kb subcommand.
func RunKB(ctx context.Context, env *Env, raw []string) error {
	p := NewArgParser(raw, kbBoolFlags...)

	switch p.Subcommand() {
	case "list", "ls":
		return kbList(ctx, env, p)
	case "get", "show":
		return kbGet(ctx, env, p)
	case "search", "find":
		return kbSearch(ctx, env, p)
	case "add", "new":
		return kbAdd(ctx, env, p)
	case "edit", "update":
		return kbEdit(ctx, env, p)
	case "rm", "delete":
		return kbRemove(ctx, env, p)
	case "import":
		return kbImport(ctx, env, p)
	case "seed":
		return runImport(ctx, env, "seed", kbimport.SeedEntries(), importRate(env, p))
	case "":
		return &UsageError{Message: "kb requires a subcommand", Usage: kbUsage}
	default:
		return &UsageError{Message: fmt.Sprintf("unknown kb subcommand %q", p.Subcommand()), Usage: kbUsage}
	}
}

// =============================================================================
// READ
// =============================================================================

func kbList(ctx context.Context, env *Env, p *ArgParser) error {
	category, err := categoryFlag(p)
	if err != nil {
		return err
	}

	entries, err := env.Client.GetAllEntries(ctx)
	if err != nil {
		return NewCommandError("kb", "list", "Failed to fetch knowledge entries", err)
	}
	if category != "" {
		kept := entries[:0]
		for _, e := range entries {
			if e.Category == category {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	return env.emit("kb list", entries, func() {
		printEntryTable(env, entries, "No entries yet. Add your first entry to get started!")
	})
}

func kbGet(ctx context.Context, env *Env, p *ArgParser) error {
	id, err := ParseID(p.Positional(1))
	if err != nil {
		return err
	}

	entry, err := env.Client.GetEntry(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return &NotFoundError{Resource: "entry", ID: strconv.Itoa(id)}
		}
		return NewCommandError("kb", "get", "Failed to fetch knowledge entry", err)
	}

	return env.emit("kb get", entry, func() {
		printEntry(env, *entry)
	})
}

func kbSearch(ctx context.Context, env *Env, p *ArgParser) error {
	query := strings.TrimSpace(strings.Join(p.PositionalFrom(1), " "))
	if query == "" {
		return &UsageError{Message: "search requires a query", Usage: `jarvis kb search "query" [--top-k N] [--category C]`}
	}

	topK := env.topK()
	if v := p.Flag("top-k", "k"); v != "" {
		n, err := ParsePositiveInt(v, "top-k")
		if err != nil {
			return err
		}
		topK = n
	}
	category, err := categoryFlag(p)
	if err != nil {
		return err
	}

	entries, err := env.Client.SearchInCategory(ctx, query, category, topK)
	if err != nil {
		return NewCommandError("kb", "search", "Search failed", err)
	}

	return env.emit("kb search", entries, func() {
		printEntryTable(env, entries, "No entries match your search.")
	})
}

// =============================================================================
// WRITE
// =============================================================================

func kbAdd(ctx context.Context, env *Env, p *ArgParser) error {
	category, err := categoryFlag(p)
	if err != nil {
		return err
	}
	input := model.EntryInput{
		Title:    strings.TrimSpace(p.Flag("title", "t")),
		Content:  strings.TrimSpace(p.Flag("content", "c")),
		Category: category,
		Tags:     model.ParseTags(p.Flag("tags")),
		Source:   strings.TrimSpace(p.Flag("source")),
	}
	if err := input.Validate(); err != nil {
		return &ValidationError{
			Field:   "entry",
			Reason:  "Title and content are required",
			Example: `jarvis kb add --title "Git Workflow" --content "Branch from main..."`,
		}
	}

	entry, err := env.Client.AddEntry(ctx, input)
	if err != nil {
		return NewCommandError("kb", "add", "Failed to save entry", err)
	}
	return env.emit("kb add", entry, func() {
		fmt.Fprintln(env.Out, SuccessStyle.Render(fmt.Sprintf("Added entry %d: %s", entry.ID, entry.Title)))
	})
}

// kbEdit sends only the fields given on the command line.
func kbEdit(ctx context.Context, env *Env, p *ArgParser) error {
	id, err := ParseID(p.Positional(1))
	if err != nil {
		return err
	}

	var up model.EntryUpdate
	if p.HasFlag("title", "t") {
		title := strings.TrimSpace(p.Flag("title", "t"))
		if title == "" {
			return &ValidationError{Field: "title", Reason: "must not be empty"}
		}
		up.Title = &title
	}
	if p.HasFlag("content", "c") {
		content := strings.TrimSpace(p.Flag("content", "c"))
		if content == "" {
			return &ValidationError{Field: "content", Reason: "must not be empty"}
		}
		up.Content = &content
	}
	if p.HasFlag("category") {
		cat, err := categoryFlag(p)
		if err != nil {
			return err
		}
		up.Category = &cat
	}
	if p.HasFlag("tags") {
		tags := model.ParseTags(p.Flag("tags"))
		up.Tags = &tags
	}
	if p.HasFlag("source") {
		src := strings.TrimSpace(p.Flag("source"))
		up.Source = &src
	}
	if up.IsEmpty() {
		return &UsageError{Message: "edit needs at least one field to change", Usage: "jarvis kb edit <id> --title T"}
	}

	entry, err := env.Client.UpdateEntry(ctx, id, up)
	if err != nil {
		if api.IsNotFound(err) {
			return &NotFoundError{Resource: "entry", ID: strconv.Itoa(id)}
		}
		return NewCommandError("kb", "edit", "Failed to save entry", err)
	}
	return env.emit("kb edit", entry, func() {
		fmt.Fprintln(env.Out, SuccessStyle.Render(fmt.Sprintf("Updated entry %d: %s", entry.ID, entry.Title)))
	})
}

func kbRemove(ctx context.Context, env *Env, p *ArgParser) error {
	id, err := ParseID(p.Positional(1))
	if err != nil {
		return err
	}

	if !p.BoolFlag("yes", "y") {
		if env.JSON {
			return &UsageError{Message: "rm requires --yes in JSON mode", Usage: "jarvis kb rm <id> --yes"}
		}
		ok, err := confirm(env, fmt.Sprintf("Are you sure you want to delete entry %d? [y/N] ", id))
		if err != nil {
			return err
		}
		if !ok {
			env.info("Canceled.")
			return nil
		}
	}

	msg, err := env.Client.DeleteEntry(ctx, id)
	if err != nil {
		if api.IsNotFound(err) {
			return &NotFoundError{Resource: "entry", ID: strconv.Itoa(id)}
		}
		return NewCommandError("kb", "rm", "Failed to delete entry", err)
	}
	return env.emit("kb rm", map[string]any{"id": id, "message": msg}, func() {
		if msg == "" {
			msg = fmt.Sprintf("Entry %d deleted", id)
		}
		fmt.Fprintln(env.Out, SuccessStyle.Render(msg))
	})
}

// confirm asks a yes/no question on env.In.
func confirm(env *Env, prompt string) (bool, error) {
	fmt.Fprint(env.Out, prompt)
	line, err := bufio.NewReader(env.In).ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}
	ok, perr := ParseBoolString(line)
	return perr == nil && ok, nil
}

// =============================================================================
// IMPORT
// =============================================================================

func kbImport(ctx context.Context, env *Env, p *ArgParser) error {
	path := p.Positional(1)
	if path == "" {
		return &UsageError{Message: "import requires a file", Usage: "jarvis kb import <file> [--format text|markdown|json] [--category C]"}
	}

	format, err := kbimport.ParseFormat(p.Flag("format", "f"))
	if err != nil {
		return &ValidationError{Field: "format", Value: p.Flag("format", "f"), Reason: "must be text, markdown or json"}
	}
	var category model.Category
	if p.HasFlag("category") {
		if category, err = categoryFlag(p); err != nil {
			return err
		}
	}

	entries, err := kbimport.ParseFile(path, format, category)
	if err != nil {
		return NewCommandError("kb", "import", "could not read import file", err)
	}
	if category != "" {
		for i := range entries {
			entries[i].Category = category
		}
	}
	if len(entries) == 0 {
		return &ValidationError{Field: "file", Value: path, Reason: "contains no entries"}
	}

	if p.BoolFlag("dry-run") {
		return env.emit("kb import", entries, func() {
			for i, e := range entries {
				fmt.Fprintf(env.Out, "%3d  %-10s %s\n", i+1, e.Category, e.Title)
			}
			env.info("%d entries parsed (dry run, nothing sent)", len(entries))
		})
	}
	return runImport(ctx, env, "kb import", entries, importRate(env, p))
}

func importRate(env *Env, p *ArgParser) float64 {
	if v := p.Flag("rate"); v != "" {
		if r, err := strconv.ParseFloat(v, 64); err == nil && r >= 0 {
			return r
		}
	}
	if env.Config != nil {
		return env.Config.Import.RatePerSecond
	}
	return 0
}

// runImport adds entries one by one, printing a line per entry.
func runImport(ctx context.Context, env *Env, command string, entries []model.EntryInput, rate float64) error {
	data := ImportData{}
	imp := kbimport.NewImporter(env.Client, rate)
	sum, err := imp.Import(ctx, entries, func(r kbimport.Result) {
		title := r.Title
		if title == "" {
			title = fmt.Sprintf("entry %d", r.Index+1)
		}
		if r.Err != nil {
			data.Errors = append(data.Errors, fmt.Sprintf("%s: %v", title, r.Err))
			env.info("%s %s: %v", ErrorStyle.Render("FAIL"), title, r.Err)
			return
		}
		env.info("%s %s (id %d)", SuccessStyle.Render(" OK "), title, r.Entry.ID)
	})
	data.Added, data.Failed, data.Skipped = sum.Added, sum.Failed, sum.Skipped
	if err != nil {
		return NewCommandError("kb", "import", "import interrupted", err)
	}

	if emitErr := env.emit(command, data, func() {
		env.info("%d added, %d failed, %d skipped", sum.Added, sum.Failed, sum.Skipped)
	}); emitErr != nil {
		return emitErr
	}
	if sum.Failed > 0 {
		return NewCommandError("kb", "import", fmt.Sprintf("%d entries failed", sum.Failed), nil)
	}
	return nil
}

// =============================================================================
// OUTPUT
// =============================================================================

func categoryFlag(p *ArgParser) (model.Category, error) {
	if !p.HasFlag("category") {
		return "", nil
	}
	v := p.Flag("category")
	cat, err := model.ParseCategory(v)
	if err != nil {
		return "", &ValidationError{Field: "category", Value: v, Reason: err.Error()}
	}
	return cat, nil
}

func (e *Env) topK() int {
	if e.Config != nil && e.Config.API.SearchTopK > 0 {
		return e.Config.API.SearchTopK
	}
	return api.DefaultTopK
}

func printEntryTable(env *Env, entries []model.KnowledgeEntry, empty string) {
	w := env.Out
	if len(entries) == 0 {
		fmt.Fprintln(w, DimStyle.Render(empty))
		return
	}

	titleWidth := max(env.Width-40, 20)
	if !env.Quiet {
		fmt.Fprintln(w, SectionStyle.Render(fmt.Sprintf("%5s  %-10s  %s", "ID", "CATEGORY", "TITLE")))
	}
	for _, e := range entries {
		line := fmt.Sprintf("%5d  %-10s  %s", e.ID, e.Category, util.PadRight(util.TruncateWidth(util.SingleLine(e.Title), titleWidth), titleWidth))
		if len(e.Tags) > 0 && !env.Quiet {
			line += "  " + DimStyle.Render(hashTags(e.Tags))
		}
		fmt.Fprintln(w, line)
	}
	env.info("%s", DimStyle.Render(fmt.Sprintf("%d entries", len(entries))))
}

func printEntry(env *Env, e model.KnowledgeEntry) {
	w := env.Out
	fmt.Fprintln(w, TitleStyle.Render(e.Title))
	fmt.Fprintln(w, Field("ID", strconv.Itoa(e.ID)))
	fmt.Fprintln(w, Field("Category", e.Category.Label()))
	if len(e.Tags) > 0 {
		fmt.Fprintln(w, Field("Tags", hashTags(e.Tags)))
	}
	if e.Source != "" {
		fmt.Fprintln(w, Field("Source", e.Source))
	}
	if !e.UpdatedAt.IsZero() {
		fmt.Fprintln(w, Field("Updated", e.UpdatedAt.Format("2006-01-02 15:04")))
	}
	fmt.Fprintln(w, Separator(min(env.Width, 60)))
	fmt.Fprintln(w, e.Content)
}

func hashTags(tags []string) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = "#" + t
	}
	return strings.Join(out, " ")
}
