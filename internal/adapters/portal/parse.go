package portal

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/euserv-renew/internal/domain"
	"golang.org/x/net/html"
)

const (
	ordersTabID            = "kc2_order_customer_orders_tab_content_1"
	orderTableClass        = "kc2_order_table"
	contentTableClass      = "kc2_content_table"
	serverIDCellClass      = "td-z1-sp1-kc"
	actionCellClass        = "td-z1-sp2-kc"
	actionContainerClass   = "kc2_order_action_container"
	extensionPossibleLabel = "Contract extension possible from"

	markerHello        = "Hello"
	markerCustomerData = "Confirm or change your customer data here"
	markerCaptcha      = "To finish the login process please solve the following captcha."
)

func classifyLoginPage(body string) domain.LoginPage {
	switch {
	case strings.Contains(body, markerHello), strings.Contains(body, markerCustomerData):
		return domain.PageAuthenticated
	case strings.Contains(body, markerCaptcha):
		return domain.PageCaptcha
	default:
		return domain.PageRejected
	}
}

// parseResources extracts server rows from the order overview. A server
// needs renewal when its action cell does not announce a future extension
// date.
func parseResources(r io.Reader) ([]domain.Resource, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse order overview: %w", err)
	}

	tab := findFirst(doc, func(n *html.Node) bool { return attr(n, "id") == ordersTabID })
	if tab == nil {
		return nil, nil
	}

	var (
		resources []domain.Resource
		index     = map[domain.ResourceID]int{}
		seenRows  = map[*html.Node]struct{}{}
	)
	tables := findAll(tab, func(n *html.Node) bool {
		return isElement(n, "table") && hasClass(n, orderTableClass) && hasClass(n, contentTableClass)
	})
	for _, table := range tables {
		for _, row := range findAll(table, func(n *html.Node) bool { return isElement(n, "tr") }) {
			if _, ok := seenRows[row]; ok {
				continue
			}
			seenRows[row] = struct{}{}

			idCells := findAll(row, func(n *html.Node) bool { return hasClass(n, serverIDCellClass) })
			if len(idCells) != 1 {
				continue
			}
			id := domain.ResourceID(strings.TrimSpace(textContent(idCells[0])))

			container := findFirstIn(
				findAll(row, func(n *html.Node) bool { return hasClass(n, actionCellClass) }),
				func(n *html.Node) bool { return hasClass(n, actionContainerClass) },
			)
			if container == nil {
				return nil, fmt.Errorf("%w: server %s has no action container", domain.ErrUnexpectedPage, id)
			}

			resource := domain.Resource{
				ID:           id,
				NeedsRenewal: !strings.Contains(textContent(container), extensionPossibleLabel),
			}
			if i, ok := index[id]; ok {
				resources[i] = resource
				continue
			}
			index[id] = len(resources)
			resources = append(resources, resource)
		}
	}

	return resources, nil
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func attr(n *html.Node, key string) string {
	if n.Type != html.ElementNode {
		return ""
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

// findAll returns the descendants of root (root excluded) matching match, in
// document order.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out
}

func findFirst(root *html.Node, match func(*html.Node) bool) *html.Node {
	return findFirstIn([]*html.Node{root}, match)
}

func findFirstIn(roots []*html.Node, match func(*html.Node) bool) *html.Node {
	for _, root := range roots {
		if found := findAll(root, match); len(found) > 0 {
			return found[0]
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
