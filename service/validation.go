package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ChannelLinkPrefix is the only accepted form of a gate channel link
const ChannelLinkPrefix = "https://t.me/"

var (
	usernamePattern    = regexp.MustCompile(`^[a-zA-Z0-9_]{5,32}$`)
	channelNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

	// First path segments t.me uses for something other than a public chat
	reservedLinkPaths = map[string]bool{
		"joinchat": true,
		"c":        true,
		"s":        true,
		"addlist":  true,
		"share":    true,
		"proxy":    true,
		"socks":    true,
		"iv":       true,
	}
)

// NormalizeUsername strips a leading "@" and validates the payout username
func NormalizeUsername(raw string) (string, error) {
	username := strings.TrimPrefix(strings.TrimSpace(raw), "@")
	if !usernamePattern.MatchString(username) {
		return "", fmt.Errorf("username %q: %w", raw, ErrInvalidInput)
	}
	return username, nil
}

// ParseChannelLink validates a public t.me channel link and derives the
// "@name" channel id. Only https://t.me/<name> and https://t.me/s/<name> are
// accepted; invite, private and post links carry no public name.
func ParseChannelLink(link string) (string, error) {
	link = strings.TrimSpace(link)
	if !strings.HasPrefix(link, ChannelLinkPrefix) {
		return "", fmt.Errorf("link must start with %s: %w", ChannelLinkPrefix, ErrInvalidInput)
	}

	path := strings.TrimPrefix(link, ChannelLinkPrefix)
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := strings.Split(strings.TrimSuffix(path, "/"), "/")

	var name string
	switch {
	case len(segments) == 1:
		name = segments[0]
	case len(segments) == 2 && segments[0] == "s":
		name = segments[1]
	default:
		return "", fmt.Errorf("link %q is not a public channel link: %w", link, ErrInvalidInput)
	}

	if reservedLinkPaths[strings.ToLower(name)] || !channelNamePattern.MatchString(name) {
		return "", fmt.Errorf("link %q has no public channel name: %w", link, ErrInvalidInput)
	}

	return "@" + name, nil
}

// ParseAmount parses a whole number of stars
func ParseAmount(text string) (int64, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", text, ErrInvalidInput)
	}
	return amount, nil
}
