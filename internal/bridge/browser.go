package bridge

import (
	"context"

	"github.com/veilbrowser/veil/internal/domain/entity"
)

// BrowserAPI wraps the browser.* host namespace. Tab identity lives in the
// client's tabs store; the host is informed of lifecycle changes so it can
// manage the corresponding webviews.
type BrowserAPI struct {
	c *Client
}

type tabParams struct {
	TabID entity.TabID `json:"tab_id"`
}

type navigateParams struct {
	TabID entity.TabID `json:"tab_id"`
	URL   string       `json:"url"`
}

// Navigate loads a URL in a tab's webview.
func (b *BrowserAPI) Navigate(ctx context.Context, tabID entity.TabID, url string) Result {
	var out Result
	if !b.c.call(ctx, "browser.navigate", navigateParams{TabID: tabID, URL: url}, &out) {
		return unavailable("browser")
	}
	return out
}

// GoBack navigates back in a tab's session history.
func (b *BrowserAPI) GoBack(ctx context.Context, tabID entity.TabID) Result {
	var out Result
	if !b.c.call(ctx, "browser.goBack", tabParams{TabID: tabID}, &out) {
		return unavailable("browser")
	}
	return out
}

// GoForward navigates forward in a tab's session history.
func (b *BrowserAPI) GoForward(ctx context.Context, tabID entity.TabID) Result {
	var out Result
	if !b.c.call(ctx, "browser.goForward", tabParams{TabID: tabID}, &out) {
		return unavailable("browser")
	}
	return out
}

// Reload reloads the tab.
func (b *BrowserAPI) Reload(ctx context.Context, tabID entity.TabID) Result {
	var out Result
	if !b.c.call(ctx, "browser.reload", tabParams{TabID: tabID}, &out) {
		return unavailable("browser")
	}
	return out
}

// Stop cancels an in-flight load.
func (b *BrowserAPI) Stop(ctx context.Context, tabID entity.TabID) Result {
	var out Result
	if !b.c.call(ctx, "browser.stop", tabParams{TabID: tabID}, &out) {
		return unavailable("browser")
	}
	return out
}

// CreateTab tells the host to back a locally created tab with a webview.
func (b *BrowserAPI) CreateTab(ctx context.Context, tabID entity.TabID, url string) Result {
	var out Result
	if !b.c.call(ctx, "browser.createTab", navigateParams{TabID: tabID, URL: url}, &out) {
		return unavailable("browser")
	}
	return out
}

// SwitchTab brings a tab's webview to the foreground.
func (b *BrowserAPI) SwitchTab(ctx context.Context, tabID entity.TabID) Result {
	var out Result
	if !b.c.call(ctx, "browser.switchTab", tabParams{TabID: tabID}, &out) {
		return unavailable("browser")
	}
	return out
}

// CloseTab destroys a tab's webview.
func (b *BrowserAPI) CloseTab(ctx context.Context, tabID entity.TabID) Result {
	var out Result
	if !b.c.call(ctx, "browser.closeTab", tabParams{TabID: tabID}, &out) {
		return unavailable("browser")
	}
	return out
}

type findParams struct {
	TabID entity.TabID `json:"tab_id"`
	Query string       `json:"query"`
}

// FindInPage starts a text search in the tab.
func (b *BrowserAPI) FindInPage(ctx context.Context, tabID entity.TabID, query string) Result {
	var out Result
	if !b.c.call(ctx, "browser.findInPage", findParams{TabID: tabID, Query: query}, &out) {
		return unavailable("browser")
	}
	return out
}

// StopFindInPage clears the current text search.
func (b *BrowserAPI) StopFindInPage(ctx context.Context, tabID entity.TabID) Result {
	var out Result
	if !b.c.call(ctx, "browser.stopFindInPage", tabParams{TabID: tabID}, &out) {
		return unavailable("browser")
	}
	return out
}
