package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"git.home.luguber.info/inful/blogsmith/internal/admin"
	"git.home.luguber.info/inful/blogsmith/internal/errors"
)

// runAdmin dispatches the entity mutation commands onto the shared service.
func runAdmin(command string, svc *admin.Service) error {
	switch command {
	case "post add":
		content, err := bodyContent(CLI.Post.Add.Content, CLI.Post.Add.ContentFile)
		if err != nil {
			return err
		}
		post, err := svc.CreatePost(admin.PostCreate{
			Title:      CLI.Post.Add.Title,
			Slug:       CLI.Post.Add.Slug,
			Summary:    CLI.Post.Add.Summary,
			Content:    content,
			Cover:      CLI.Post.Add.Cover,
			Categories: CLI.Post.Add.Category,
			Tags:       CLI.Post.Add.Tag,
			CreatedAt:  CLI.Post.Add.Created,
			Status:     CLI.Post.Add.Status,
			Pinned:     CLI.Post.Add.Pinned,
		})
		if err != nil {
			return err
		}
		return printJSON(post)

	case "post update <id>":
		target, err := svc.FindPost(CLI.Post.Update.ID)
		if err != nil {
			return err
		}
		update := admin.PostUpdate{
			Title:      CLI.Post.Update.Title,
			Slug:       CLI.Post.Update.Slug,
			Summary:    CLI.Post.Update.Summary,
			Content:    CLI.Post.Update.Content,
			Cover:      CLI.Post.Update.Cover,
			Categories: CLI.Post.Update.Category,
			Tags:       CLI.Post.Update.Tag,
			Status:     CLI.Post.Update.Status,
			CreatedAt:  CLI.Post.Update.Created,
			Pinned:     CLI.Post.Update.Pinned,
			AutoUnpin:  CLI.Post.Update.AutoUnpin,
		}
		if CLI.Post.Update.ContentFile != "" {
			content, err := bodyContent("", CLI.Post.Update.ContentFile)
			if err != nil {
				return err
			}
			update.Content = &content
		}
		post, err := svc.UpdatePost(target.ID, update)
		if err != nil {
			return err
		}
		return printJSON(post)

	case "post delete <id>":
		target, err := svc.FindPost(CLI.Post.Delete.ID)
		if err != nil {
			return err
		}
		if err := svc.DeletePost(target.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted post %s\n", target.ID)
		return nil

	case "post list":
		posts, err := svc.ListPosts()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tSTATUS\tPINNED\tTITLE")
		for _, p := range posts {
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", p.ID, p.Slug, p.Status, p.Pinned, p.Title)
		}
		return w.Flush()

	case "category add":
		category, err := svc.CreateCategory(admin.CategoryCreate{
			Name:        CLI.Category.Add.Name,
			Slug:        CLI.Category.Add.Slug,
			Description: CLI.Category.Add.Description,
			Color:       CLI.Category.Add.Color,
			Parent:      CLI.Category.Add.Parent,
		})
		if err != nil {
			return err
		}
		return printJSON(category)

	case "category update <id>":
		target, err := svc.FindCategory(CLI.Category.Update.ID)
		if err != nil {
			return err
		}
		category, err := svc.UpdateCategory(target.ID, admin.CategoryUpdate{
			Name:        CLI.Category.Update.Name,
			Slug:        CLI.Category.Update.Slug,
			Description: CLI.Category.Update.Description,
			Color:       CLI.Category.Update.Color,
			Parent:      CLI.Category.Update.Parent,
		})
		if err != nil {
			return err
		}
		return printJSON(category)

	case "category delete <id>":
		target, err := svc.FindCategory(CLI.Category.Delete.ID)
		if err != nil {
			return err
		}
		if err := svc.DeleteCategory(target.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted category %s\n", target.ID)
		return nil

	case "category list":
		categories, err := svc.ListCategories()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tNAME")
		for _, c := range categories {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Slug, c.Name)
		}
		return w.Flush()

	case "tag add":
		tag, err := svc.CreateTag(admin.TagCreate{Name: CLI.Tag.Add.Name, Slug: CLI.Tag.Add.Slug})
		if err != nil {
			return err
		}
		return printJSON(tag)

	case "tag update <id>":
		target, err := svc.FindTag(CLI.Tag.Update.ID)
		if err != nil {
			return err
		}
		tag, err := svc.UpdateTag(target.ID, admin.TagUpdate{Name: CLI.Tag.Update.Name, Slug: CLI.Tag.Update.Slug})
		if err != nil {
			return err
		}
		return printJSON(tag)

	case "tag delete <id>":
		target, err := svc.FindTag(CLI.Tag.Delete.ID)
		if err != nil {
			return err
		}
		if err := svc.DeleteTag(target.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted tag %s\n", target.ID)
		return nil

	case "tag list":
		tags, err := svc.ListTags()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSLUG\tNAME")
		for _, tg := range tags {
			fmt.Fprintf(w, "%s\t%s\t%s\n", tg.ID, tg.Slug, tg.Name)
		}
		return w.Flush()

	case "nav add":
		item, err := svc.CreateNavItem(admin.NavCreate{
			Label:   CLI.Nav.Add.Label,
			Href:    CLI.Nav.Add.Href,
			Order:   CLI.Nav.Add.Order,
			Visible: CLI.Nav.Add.Visible,
		})
		if err != nil {
			return err
		}
		return printJSON(item)

	case "nav update <id>":
		item, err := svc.UpdateNavItem(CLI.Nav.Update.ID, admin.NavUpdate{
			Label:   CLI.Nav.Update.Label,
			Href:    CLI.Nav.Update.Href,
			Order:   CLI.Nav.Update.Order,
			Visible: CLI.Nav.Update.Visible,
		})
		if err != nil {
			return err
		}
		return printJSON(item)

	case "nav delete <id>":
		if err := svc.DeleteNavItem(CLI.Nav.Delete.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted nav item %s\n", CLI.Nav.Delete.ID)
		return nil

	case "nav list":
		items, err := svc.ListNavItems()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tORDER\tVISIBLE\tLABEL\tHREF")
		for _, item := range items {
			fmt.Fprintf(w, "%s\t%d\t%v\t%s\t%s\n", item.ID, item.Order, item.Visible, item.Label, item.Href)
		}
		return w.Flush()

	case "settings show":
		settings, err := svc.Settings()
		if err != nil {
			return err
		}
		return printJSON(settings)

	case "settings set", "settings set <key=value>":
		update := admin.SettingsUpdate{MarkdownTheme: CLI.Settings.Set.Theme, Extra: map[string]any{}}
		for _, pair := range CLI.Settings.Set.Pairs {
			key, value, ok := strings.Cut(pair, "=")
			if !ok || key == "" {
				return errors.ValidationMsg(fmt.Sprintf("invalid settings pair %q, expected key=value", pair))
			}
			update.Extra[key] = value
		}
		if update.MarkdownTheme == nil && len(update.Extra) == 0 {
			return errors.ValidationMsg("nothing to set: pass --theme or key=value pairs")
		}
		settings, err := svc.UpdateSettings(update)
		if err != nil {
			return err
		}
		return printJSON(settings)
	}

	return errors.Newf(errors.CategoryInternal, "unhandled command: %s", command)
}

// bodyContent resolves post body input: an inline flag or a file, not both.
func bodyContent(inline, file string) (string, error) {
	if inline != "" && file != "" {
		return "", errors.ValidationMsg("pass either --content or --content-file, not both")
	}
	if file == "" {
		return inline, nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return "", errors.Storage("read content file", err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "encode output")
	}
	fmt.Println(string(data))
	return nil
}
