/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package utils

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/niklasfasching/go-org/org"
	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// BaseURLEnvVar names the public URL of the site, used to tell internal
// absolute links from external ones and to build links printed offline.
const BaseURLEnvVar = "CLINIC_BASE_URL"

// DefaultNoteTitle is used when a note has neither a title nor a headline.
const DefaultNoteTitle = "ملاحظة بدون عنوان"

const externalLinkPrefix = "🗗 "

var externalLinkRelTokens = []string{"noopener", "noreferrer"}

var newOrgConfig = org.New

var parseOrg = func(config *org.Configuration, reader io.Reader) *org.Document {
	return config.Parse(reader, "")
}

var newHTMLWriter = org.NewHTMLWriter

var writeOrg = func(doc *org.Document, writer *org.HTMLWriter) (string, error) {
	return doc.Write(writer)
}

var parseHTMLFragment = nethtml.ParseFragment

var renderHTML = nethtml.Render

var (
	titleDirectivePattern = regexp.MustCompile(`(?i)^\s*#\+TITLE:\s+(.+)$`)
	headlinePattern       = regexp.MustCompile(`(?m)^\*+\s+(.+)$`)
)

// BaseURL returns the configured public site URL without a trailing slash.
func BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(os.Getenv(BaseURLEnvVar)), "/")
}

// ParseOrgToHTML converts a staff note written in org-mode to HTML.
func ParseOrgToHTML(content string) (string, error) {
	return ParseOrgToHTMLWithBasePath(content, "/notes")
}

// ParseOrgToHTMLWithBasePath converts org-mode content to HTML, resolving
// id: links to notes under basePath.
func ParseOrgToHTMLWithBasePath(content string, basePath string) (string, error) {
	config := newOrgConfig()

	trimmedBase := strings.TrimRight(strings.TrimSpace(basePath), "/")
	if trimmedBase == "" {
		trimmedBase = "/notes"
	}

	config.ResolveLink = func(protocol string, description []org.Node, link string) org.Node {
		if protocol == "id" {
			return org.RegularLink{
				Description: description,
				URL:         fmt.Sprintf("%s/%s", trimmedBase, strings.TrimPrefix(link, "id:")),
			}
		}

		return org.RegularLink{
			Protocol:    protocol,
			Description: description,
			URL:         link,
		}
	}

	doc := parseOrg(config, strings.NewReader(content))
	if doc.Error != nil {
		return "", fmt.Errorf("failed to parse org-mode content: %w", doc.Error)
	}

	writer := newHTMLWriter()
	writer.HighlightCodeBlock = func(source, _ string, inline bool, _ map[string]string) string {
		if inline {
			return `<code class="inline-code">` + html.EscapeString(source) + `</code>`
		}

		return `<pre><code class="code-block">` + html.EscapeString(source) + `</code></pre>`
	}

	renderedHTML, err := writeOrg(doc, writer)
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}

	annotatedHTML, err := addExternalLinkPrefix(renderedHTML)
	if err != nil {
		return "", fmt.Errorf("failed to annotate external links: %w", err)
	}

	return annotatedHTML, nil
}

func addExternalLinkPrefix(htmlBody string) (string, error) {
	if strings.TrimSpace(htmlBody) == "" {
		return htmlBody, nil
	}

	container := &nethtml.Node{Type: nethtml.ElementNode, Data: "div", DataAtom: atom.Div}

	nodes, err := parseHTMLFragment(strings.NewReader(htmlBody), container)
	if err != nil {
		return "", err
	}

	for _, node := range nodes {
		container.AppendChild(node)
	}

	annotateExternalLinks(container)

	var buffer bytes.Buffer

	for child := container.FirstChild; child != nil; child = child.NextSibling {
		if err := renderHTML(&buffer, child); err != nil {
			return "", err
		}
	}

	return buffer.String(), nil
}

func annotateExternalLinks(node *nethtml.Node) {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == nethtml.ElementNode && child.DataAtom == atom.A {
			if isExternalLink(attrValue(child, "href")) {
				if !linkHasPrefix(child) {
					prefixNode := &nethtml.Node{Type: nethtml.TextNode, Data: externalLinkPrefix}
					if child.FirstChild != nil {
						child.InsertBefore(prefixNode, child.FirstChild)
					} else {
						child.AppendChild(prefixNode)
					}
				}

				setAttr(child, "target", "_blank")
				setAttr(child, "rel", mergeLinkRelValues(attrValue(child, "rel"), externalLinkRelTokens...))
			}
		}

		annotateExternalLinks(child)
	}
}

func attrValue(node *nethtml.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}

	return ""
}

func setAttr(node *nethtml.Node, key, value string) {
	for i := range node.Attr {
		if node.Attr[i].Key == key {
			node.Attr[i].Val = value
			return
		}
	}

	node.Attr = append(node.Attr, nethtml.Attribute{Key: key, Val: value})
}

// mergeLinkRelValues appends the required tokens missing from existing,
// keeping the existing order and spelling.
func mergeLinkRelValues(existing string, required ...string) string {
	tokens := strings.Fields(existing)

	seen := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		seen[strings.ToLower(token)] = true
	}

	for _, token := range required {
		if !seen[strings.ToLower(token)] {
			tokens = append(tokens, token)
			seen[strings.ToLower(token)] = true
		}
	}

	return strings.Join(tokens, " ")
}

func linkHasPrefix(link *nethtml.Node) bool {
	if link.FirstChild == nil || link.FirstChild.Type != nethtml.TextNode {
		return false
	}

	return strings.HasPrefix(link.FirstChild.Data, strings.TrimSpace(externalLinkPrefix))
}

func isExternalLink(href string) bool {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}

	// Site-relative paths are internal, protocol-relative ones are not.
	if strings.HasPrefix(href, "/") && !strings.HasPrefix(href, "//") {
		return false
	}

	return !isBaseURLLink(href)
}

func isBaseURLLink(href string) bool {
	baseURL := BaseURL()
	if baseURL == "" {
		return false
	}

	if strings.HasPrefix(href, baseURL) {
		return true
	}

	parsedBase, ok := parseAbsoluteURL(baseURL)
	if !ok {
		return false
	}

	parsedHref, ok := parseAbsoluteURL(href)
	if !ok {
		return false
	}

	if !strings.EqualFold(parsedBase.Host, parsedHref.Host) {
		return false
	}

	basePath := strings.TrimRight(parsedBase.Path, "/")
	if basePath == "" {
		return true
	}

	return parsedHref.Path == basePath || strings.HasPrefix(parsedHref.Path, basePath+"/")
}

func parseAbsoluteURL(raw string) (*url.URL, bool) {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		parsed, err = url.Parse("https://" + raw)
	}

	if err != nil || parsed.Host == "" {
		return nil, false
	}

	return parsed, true
}

// ExtractTitle returns the #+TITLE: directive of content, falling back to
// the first headline and then to DefaultNoteTitle.
func ExtractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if matches := titleDirectivePattern.FindStringSubmatch(line); len(matches) > 1 {
			return strings.TrimSpace(matches[1])
		}
	}

	if matches := headlinePattern.FindStringSubmatch(content); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	return DefaultNoteTitle
}
