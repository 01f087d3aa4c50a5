package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/twinbot/core/internal/adapters/webfetch"
	"github.com/twinbot/core/internal/domain/entities"
	"github.com/twinbot/core/internal/infrastructure/logger"
	"github.com/twinbot/core/internal/ports"
)

// HeadlineLimit caps the headlines returned per news fetch.
const HeadlineLimit = 15

// newsSources is the fixed feed table; lookups outside it fail with
// ErrUnknownNewsSource.
var newsSources = map[string]string{
	"bbc":          "http://feeds.bbci.co.uk/news/rss.xml",
	"reuters":      "http://feeds.reuters.com/reuters/topNews",
	"techcrunch":   "https://techcrunch.com/feed/",
	"sciencedaily": "https://www.sciencedaily.com/rss/all.xml",
	"espn":         "https://www.espn.com/espn/rss/news",
}

// Headline is one item from a news feed.
type Headline struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
}

// rssFeed mirrors the subset of RSS 2.0 the feeds share.
type rssFeed struct {
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

// wikiSummaryMax caps how much of a Wikipedia extract we display.
const wikiSummaryMax = 2000

// wikipediaSummary is the subset of Wikipedia's REST summary response we use.
type wikipediaSummary struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

// wttrResponse is the subset of wttr.in's j1 JSON format we render.
type wttrResponse struct {
	CurrentCondition []struct {
		TempC       string `json:"temp_C"`
		TempF       string `json:"temp_F"`
		FeelsLikeC  string `json:"FeelsLikeC"`
		Humidity    string `json:"humidity"`
		WindKmph    string `json:"windspeedKmph"`
		WeatherDesc []struct {
			Value string `json:"value"`
		} `json:"weatherDesc"`
	} `json:"current_condition"`
	Weather []struct {
		Date     string `json:"date"`
		MaxTempC string `json:"maxtempC"`
		MinTempC string `json:"mintempC"`
	} `json:"weather"`
}

// duckDuckGoResponse is the subset of the instant-answer API we use.
type duckDuckGoResponse struct {
	AbstractText   string `json:"AbstractText"`
	AbstractSource string `json:"AbstractSource"`
	AbstractURL    string `json:"AbstractURL"`
	Answer         string `json:"Answer"`
	RelatedTopics  []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// dictionaryEntry is the subset of dictionaryapi.dev's response we render.
type dictionaryEntry struct {
	Word     string `json:"word"`
	Phonetic string `json:"phonetic"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
		Synonyms []string `json:"synonyms"`
	} `json:"meanings"`
}

// WeatherReport is the detailed current-conditions view.
type WeatherReport struct {
	City       string        `json:"city"`
	TempC      string        `json:"temp_c"`
	TempF      string        `json:"temp_f"`
	FeelsLikeC string        `json:"feels_like_c"`
	Condition  string        `json:"condition"`
	Humidity   string        `json:"humidity"`
	WindKmph   string        `json:"wind_kmph"`
	Forecast   []ForecastDay `json:"forecast"`
}

// ForecastDay is one day of the forecast.
type ForecastDay struct {
	Date string `json:"date"`
	High string `json:"high"`
	Low  string `json:"low"`
}

// ResearchService wraps the best-effort web collaborators and persists
// lookups into the research history. Weather, fact, and definition
// lookups return display strings; transport failures map to a friendly
// unavailable message and never surface as typed errors.
type ResearchService struct {
	repo   ports.ResearchRepository
	client *webfetch.Client
	logger *logger.Logger
}

// NewResearchService creates a new research service
func NewResearchService(repo ports.ResearchRepository, client *webfetch.Client, logger *logger.Logger) *ResearchService {
	return &ResearchService{
		repo:   repo,
		client: client,
		logger: logger,
	}
}

// Weather returns a one-line weather summary for the city. Implements
// ports.WeatherFetcher for the briefing.
func (s *ResearchService) Weather(ctx context.Context, city string) string {
	if city == "" {
		return "Set your city in profile for weather info"
	}

	u := fmt.Sprintf("https://wttr.in/%s?format=%s", url.PathEscape(city), url.QueryEscape("%C %t %h %w"))
	text, err := s.client.GetText(ctx, u)
	if err != nil {
		s.logger.Warnw("Weather fetch failed", "city", city, "error", err)
		return "Could not fetch weather"
	}
	return strings.TrimSpace(text)
}

// DetailedWeather returns current conditions and a three-day forecast
func (s *ResearchService) DetailedWeather(ctx context.Context, city string) (*WeatherReport, error) {
	var resp wttrResponse
	u := fmt.Sprintf("https://wttr.in/%s?format=j1", url.PathEscape(city))
	if err := s.client.GetJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}
	if len(resp.CurrentCondition) == 0 {
		return nil, fmt.Errorf("no weather data for %s", city)
	}

	current := resp.CurrentCondition[0]
	report := &WeatherReport{
		City:       city,
		TempC:      current.TempC,
		TempF:      current.TempF,
		FeelsLikeC: current.FeelsLikeC,
		Humidity:   current.Humidity,
		WindKmph:   current.WindKmph,
	}
	if len(current.WeatherDesc) > 0 {
		report.Condition = current.WeatherDesc[0].Value
	}
	for i, day := range resp.Weather {
		if i == 3 {
			break
		}
		report.Forecast = append(report.Forecast, ForecastDay{
			Date: day.Date,
			High: day.MaxTempC,
			Low:  day.MinTempC,
		})
	}
	return report, nil
}

// QuickFact looks up a query against the DuckDuckGo instant-answer API
// and returns the best available display text.
func (s *ResearchService) QuickFact(ctx context.Context, query string, now time.Time) string {
	var resp duckDuckGoResponse
	u := fmt.Sprintf("https://api.duckduckgo.com/?q=%s&format=json&no_html=1", url.QueryEscape(query))
	if err := s.client.GetJSON(ctx, u, &resp); err != nil {
		s.logger.Warnw("Fact lookup failed", "query", query, "error", err)
		return "Lookup unavailable right now"
	}

	if resp.AbstractText != "" {
		s.saveEntry(ctx, "Fact Lookup", query, resp.AbstractText, resp.AbstractURL, now)
		if resp.AbstractSource != "" {
			return fmt.Sprintf("%s (source: %s)", resp.AbstractText, resp.AbstractSource)
		}
		return resp.AbstractText
	}
	if resp.Answer != "" {
		s.saveEntry(ctx, "Fact Lookup", query, resp.Answer, "", now)
		return resp.Answer
	}
	if len(resp.RelatedTopics) > 0 {
		related := make([]string, 0, 5)
		for _, t := range resp.RelatedTopics {
			if t.Text == "" {
				continue
			}
			related = append(related, t.Text)
			if len(related) == 5 {
				break
			}
		}
		if len(related) > 0 {
			return "No direct answer; related: " + strings.Join(related, " | ")
		}
	}
	return "No results found; try rephrasing the question"
}

// Define looks up a word against dictionaryapi.dev and renders the
// definitions as display text.
func (s *ResearchService) Define(ctx context.Context, word string, now time.Time) string {
	var entries []dictionaryEntry
	u := fmt.Sprintf("https://api.dictionaryapi.dev/api/v2/entries/en/%s", url.PathEscape(word))
	if err := s.client.GetJSON(ctx, u, &entries); err != nil {
		s.logger.Warnw("Definition lookup failed", "word", word, "error", err)
		return fmt.Sprintf("No definition found for %q", word)
	}
	if len(entries) == 0 {
		return fmt.Sprintf("No definition found for %q", word)
	}

	entry := entries[0]
	var b strings.Builder
	b.WriteString(entry.Word)
	if entry.Phonetic != "" {
		b.WriteString(" ")
		b.WriteString(entry.Phonetic)
	}
	for _, meaning := range entry.Meanings {
		b.WriteString("\n")
		b.WriteString(meaning.PartOfSpeech)
		for i, def := range meaning.Definitions {
			if i == 3 {
				break
			}
			fmt.Fprintf(&b, "\n  %d. %s", i+1, def.Definition)
			if def.Example != "" {
				fmt.Fprintf(&b, " (e.g. %q)", def.Example)
			}
		}
		if len(meaning.Synonyms) > 0 {
			syn := meaning.Synonyms
			if len(syn) > 5 {
				syn = syn[:5]
			}
			fmt.Fprintf(&b, "\n  synonyms: %s", strings.Join(syn, ", "))
		}
	}

	text := b.String()
	s.saveEntry(ctx, "Dictionary", word, text, u, now)
	return text
}

// WikipediaSummary looks up a topic's article summary on Wikipedia and
// records the lookup in the research history.
func (s *ResearchService) WikipediaSummary(ctx context.Context, topic string, now time.Time) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "Give me a topic to look up"
	}

	var resp wikipediaSummary
	u := fmt.Sprintf("https://en.wikipedia.org/api/rest_v1/page/summary/%s", url.PathEscape(topic))
	if err := s.client.GetJSON(ctx, u, &resp); err != nil {
		s.logger.Warnw("Wikipedia lookup failed", "topic", topic, "error", err)
		return fmt.Sprintf("No Wikipedia article found for %q; try a different search term", topic)
	}
	if resp.Extract == "" || resp.Type == "disambiguation" {
		return fmt.Sprintf("No Wikipedia article found for %q; try a different search term", topic)
	}

	extract := resp.Extract
	if len(extract) > wikiSummaryMax {
		cut := wikiSummaryMax
		for cut > 0 && !utf8.RuneStart(extract[cut]) {
			cut--
		}
		extract = extract[:cut] + "..."
	}

	s.saveEntry(ctx, "Wikipedia", topic, resp.Extract, resp.ContentURLs.Desktop.Page, now)

	if resp.Title != "" && !strings.EqualFold(resp.Title, topic) {
		return fmt.Sprintf("%s: %s", resp.Title, extract)
	}
	return extract
}

// Headlines fetches the latest items from a named news source
func (s *ResearchService) Headlines(ctx context.Context, source string) ([]Headline, error) {
	feedURL, ok := newsSources[strings.ToLower(source)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", entities.ErrUnknownNewsSource, source)
	}

	var feed rssFeed
	if err := s.client.GetXML(ctx, feedURL, &feed); err != nil {
		return nil, fmt.Errorf("failed to fetch news from %s: %w", source, err)
	}

	headlines := make([]Headline, 0, HeadlineLimit)
	for _, item := range feed.Channel.Items {
		if len(headlines) == HeadlineLimit {
			break
		}
		headlines = append(headlines, Headline{
			Title:     strings.TrimSpace(item.Title),
			Link:      strings.TrimSpace(item.Link),
			Published: strings.TrimSpace(item.PubDate),
		})
	}
	return headlines, nil
}

// NewsSources lists the available feed names
func (s *ResearchService) NewsSources() []string {
	names := make([]string, 0, len(newsSources))
	for name := range newsSources {
		names = append(names, name)
	}
	return names
}

// History returns the newest research entries first
func (s *ResearchService) History(ctx context.Context, limit int) ([]entities.ResearchEntry, error) {
	entries, err := s.repo.History(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load research history: %w", err)
	}
	return entries, nil
}

// AddBookmark saves a bookmark
func (s *ResearchService) AddBookmark(ctx context.Context, req ports.AddBookmarkRequest, now time.Time) (*entities.Bookmark, error) {
	bookmark := &entities.Bookmark{
		ID:       uuid.New().String(),
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
		Added:    now,
	}
	if bookmark.Category == "" {
		bookmark.Category = "General"
	}

	if err := s.repo.AddBookmark(ctx, bookmark); err != nil {
		return nil, fmt.Errorf("failed to save bookmark: %w", err)
	}

	s.logger.Infow("Bookmark saved", "title", bookmark.Title, "url", bookmark.URL)

	return bookmark, nil
}

// Bookmarks returns all saved bookmarks
func (s *ResearchService) Bookmarks(ctx context.Context) ([]entities.Bookmark, error) {
	bookmarks, err := s.repo.Bookmarks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	return bookmarks, nil
}

// saveEntry records a lookup in the history. Failures are logged; a
// full history store never fails the lookup that triggered it.
func (s *ResearchService) saveEntry(ctx context.Context, source, topic, summary, entryURL string, now time.Time) {
	entry := &entities.ResearchEntry{
		ID:        uuid.New().String(),
		Source:    source,
		Topic:     topic,
		Summary:   summary,
		URL:       entryURL,
		Timestamp: now,
	}
	if err := s.repo.AddEntry(ctx, entry); err != nil {
		s.logger.Warnw("Failed to save research entry", "source", source, "topic", topic, "error", err)
	}
}
