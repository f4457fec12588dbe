// Package docs embeds the user documentation of fin, one markdown file per
// topic.
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// Index is the topic listing the other topics.
const Index = "readme"

// All is the pseudo topic expanding to every topic but the Index.
const All = "*"

// GetTopic returns the content of a documentation topic.
func GetTopic(topic string) (string, error) {
	if topic == All {
		topics, err := GetAllTopics()
		if err != nil {
			return "", err
		}
		return GetTopics(topics...)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of several topics, one after the other.
func GetTopics(topics ...string) (string, error) {
	var b strings.Builder
	for _, topic := range topics {
		content, err := GetTopic(topic)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// GetAllTopics returns the sorted names of all topics, the Index excluded.
func GetAllTopics() ([]string, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if e.IsDir() || name == Index {
			continue
		}
		topics = append(topics, name)
	}
	slices.Sort(topics)
	return topics, nil
}

// Summary is a topic with its one line description.
type Summary struct {
	Topic       string
	Description string
}

var summaryLine = regexp.MustCompile(`^\*\s+([^:]+):\s*(.*)$`)

// Summaries returns the topics listed in the Index, in the Index order.
func Summaries() ([]Summary, error) {
	index, err := GetTopic(Index)
	if err != nil {
		return nil, err
	}
	var list []Summary
	scanner := bufio.NewScanner(strings.NewReader(index))
	for scanner.Scan() {
		if m := summaryLine.FindStringSubmatch(scanner.Text()); m != nil {
			list = append(list, Summary{Topic: strings.TrimSpace(m[1]), Description: m[2]})
		}
	}
	return list, scanner.Err()
}
