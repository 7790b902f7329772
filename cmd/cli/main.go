// Package main provides a command line client for the MoodMix API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/joho/godotenv"

	"github.com/osa030/moodmix/internal/api/rest"
	domain "github.com/osa030/moodmix/internal/domain/playlist"
)

var (
	app     = kingpin.New("moodmix", "MoodMix playlist client")
	server  = app.Flag("server", "Server address").Default("http://localhost:5000").Envar("MOODMIX_SERVER").String()
	timeout = app.Flag("timeout", "Request timeout").Default("60s").Duration()

	healthCmd = app.Command("health", "Check server health")

	generateCmd    = app.Command("generate", "Generate a playlist")
	generateMood   = generateCmd.Arg("mood", "Mood, e.g. \"happy\"").Required().String()
	generateGenres = generateCmd.Flag("genre", "Genre (repeatable)").Short('g').Strings()
	generateSong   = generateCmd.Flag("favorite-song", "Favorite song used to seed recommendations").Short('f').String()
	generateVibe   = generateCmd.Flag("vibe", "Vibe level 1-10").Default("5").Int()
	generateLength = generateCmd.Flag("length", "Playlist length in minutes").Default("30").Int()
	generateUser   = generateCmd.Flag("user", "User ID to save the playlist for").Short('u').String()

	listCmd  = app.Command("list", "List saved playlists of a user")
	listUser = listCmd.Arg("user-id", "User ID").Required().String()

	deleteCmd = app.Command("delete", "Delete a saved playlist")
	deleteID  = deleteCmd.Arg("playlist-id", "Playlist ID").Required().String()
)

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	client := rest.NewClient(*server, nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	var err error
	switch command {
	case healthCmd.FullCommand():
		err = health(ctx, client)
	case generateCmd.FullCommand():
		err = generate(ctx, client)
	case listCmd.FullCommand():
		err = list(ctx, client, *listUser)
	case deleteCmd.FullCommand():
		err = remove(ctx, client, *deleteID)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func health(ctx context.Context, client *rest.Client) error {
	status, err := client.Health(ctx)
	if err != nil {
		return err
	}
	fmt.Println(status)
	return nil
}

func generate(ctx context.Context, client *rest.Client) error {
	p, err := client.Generate(ctx, domain.Request{
		Mood:           *generateMood,
		FavoriteSong:   *generateSong,
		Genres:         *generateGenres,
		VibeLevel:      generateVibe,
		PlaylistLength: generateLength,
		UserID:         *generateUser,
	})
	if err != nil {
		return err
	}

	printPlaylist(p)
	return nil
}

func list(ctx context.Context, client *rest.Client, userID string) error {
	playlists, err := client.List(ctx, userID)
	if err != nil {
		return err
	}

	if len(playlists) == 0 {
		fmt.Printf("No playlists for %s\n", userID)
		return nil
	}

	for _, p := range playlists {
		fmt.Printf("%s  %s  %-20s %2d tracks  %s\n",
			p.ID, p.CreatedAt.Local().Format("2006-01-02 15:04"), p.Mood, len(p.Tracks), formatDuration(p.TotalDuration()))
	}
	return nil
}

func remove(ctx context.Context, client *rest.Client, playlistID string) error {
	if err := client.Delete(ctx, playlistID); err != nil {
		return err
	}
	fmt.Println("Playlist deleted successfully")
	return nil
}

func printPlaylist(p *domain.Playlist) {
	fmt.Printf("Mood:        %s (vibe %d/10, %d min)\n", p.Mood, p.VibeLevel, p.PlaylistLength)
	fmt.Printf("Description: %s\n", p.MoodDescription)
	fmt.Printf("Concept:     %s\n", p.PlaylistConcept)
	fmt.Printf("Tracks:      %d (%s)\n", len(p.Tracks), formatDuration(p.TotalDuration()))
	for i, t := range p.Tracks {
		fmt.Printf("  %2d. %s - %s [%s]\n", i+1, t.Artist, t.Name, formatDuration(int64(t.Duration().Seconds())))
		fmt.Printf("      %s\n", t.URL)
	}
	if ids := p.TrackIDs(); len(ids) > 0 {
		fmt.Printf("Track IDs:   %s\n", strings.Join(ids, ","))
	}
}

func formatDuration(seconds int64) string {
	d := time.Duration(seconds) * time.Second
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
