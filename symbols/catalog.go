// Package symbols holds the fixed catalog of icon and brand-mark symbols that
// generated overlay programs may reference, plus a small search index over it.
//
// The catalog is deliberately closed: the sandbox rejects programs that
// reference a symbol outside it before execution, so a typo surfaces as an
// actionable "unknown symbol" message instead of a runtime failure mid-frame.
package symbols

// Symbol is one entry in the catalog.
type Symbol struct {
	Name     string   // identifier used in generated programs, e.g. "IconArrowRight"
	Keywords []string // search terms beyond the name itself
}

// Brand-mark symbols. Names carry the "Brand" prefix that the sandbox's
// static scan matches against.
var Brands = []Symbol{
	{Name: "BrandGithub", Keywords: []string{"git", "github", "code", "repository"}},
	{Name: "BrandX", Keywords: []string{"twitter", "x", "social", "tweet"}},
	{Name: "BrandYoutube", Keywords: []string{"youtube", "video", "play", "subscribe"}},
	{Name: "BrandInstagram", Keywords: []string{"instagram", "photo", "social", "follow"}},
	{Name: "BrandTiktok", Keywords: []string{"tiktok", "video", "short", "social"}},
	{Name: "BrandLinkedin", Keywords: []string{"linkedin", "professional", "network"}},
	{Name: "BrandFacebook", Keywords: []string{"facebook", "meta", "social"}},
	{Name: "BrandTwitch", Keywords: []string{"twitch", "stream", "live", "gaming"}},
	{Name: "BrandDiscord", Keywords: []string{"discord", "chat", "community", "server"}},
	{Name: "BrandSpotify", Keywords: []string{"spotify", "music", "podcast", "listen"}},
	{Name: "BrandApple", Keywords: []string{"apple", "mac", "ios"}},
	{Name: "BrandGoogle", Keywords: []string{"google", "search"}},
	{Name: "BrandSlack", Keywords: []string{"slack", "work", "chat", "team"}},
	{Name: "BrandFigma", Keywords: []string{"figma", "design", "prototype"}},
	{Name: "BrandNotion", Keywords: []string{"notion", "notes", "wiki", "docs"}},
	{Name: "BrandStripe", Keywords: []string{"stripe", "payment", "checkout"}},
	{Name: "BrandShopify", Keywords: []string{"shopify", "store", "ecommerce", "shop"}},
	{Name: "BrandReddit", Keywords: []string{"reddit", "forum", "community", "upvote"}},
	{Name: "BrandThreads", Keywords: []string{"threads", "meta", "social"}},
	{Name: "BrandBluesky", Keywords: []string{"bluesky", "social", "butterfly"}},
}

// Generic icon symbols.
var Icons = []Symbol{
	{Name: "IconArrowRight", Keywords: []string{"arrow", "right", "next", "forward"}},
	{Name: "IconArrowLeft", Keywords: []string{"arrow", "left", "back", "previous"}},
	{Name: "IconArrowUp", Keywords: []string{"arrow", "up", "increase", "rise"}},
	{Name: "IconArrowDown", Keywords: []string{"arrow", "down", "decrease", "drop"}},
	{Name: "IconHeart", Keywords: []string{"heart", "like", "love", "favorite"}},
	{Name: "IconStar", Keywords: []string{"star", "rating", "favorite", "review"}},
	{Name: "IconCheck", Keywords: []string{"check", "done", "complete", "success", "tick"}},
	{Name: "IconX", Keywords: []string{"x", "close", "cancel", "dismiss", "cross"}},
	{Name: "IconPlus", Keywords: []string{"plus", "add", "new", "create"}},
	{Name: "IconMinus", Keywords: []string{"minus", "remove", "subtract"}},
	{Name: "IconPlay", Keywords: []string{"play", "start", "video", "media"}},
	{Name: "IconPause", Keywords: []string{"pause", "stop", "media"}},
	{Name: "IconBell", Keywords: []string{"bell", "notification", "alert", "reminder"}},
	{Name: "IconMail", Keywords: []string{"mail", "email", "envelope", "message"}},
	{Name: "IconPhone", Keywords: []string{"phone", "call", "contact", "mobile"}},
	{Name: "IconGlobe", Keywords: []string{"globe", "world", "web", "internet", "earth"}},
	{Name: "IconMapPin", Keywords: []string{"map", "pin", "location", "place", "address"}},
	{Name: "IconCalendar", Keywords: []string{"calendar", "date", "schedule", "event"}},
	{Name: "IconClock", Keywords: []string{"clock", "time", "hour", "timer"}},
	{Name: "IconCamera", Keywords: []string{"camera", "photo", "picture", "shoot"}},
	{Name: "IconMusic", Keywords: []string{"music", "note", "song", "audio"}},
	{Name: "IconMic", Keywords: []string{"mic", "microphone", "voice", "record", "podcast"}},
	{Name: "IconSearch", Keywords: []string{"search", "find", "magnify", "lookup"}},
	{Name: "IconHome", Keywords: []string{"home", "house", "start"}},
	{Name: "IconUser", Keywords: []string{"user", "person", "profile", "account"}},
	{Name: "IconUsers", Keywords: []string{"users", "people", "group", "team", "audience"}},
	{Name: "IconCart", Keywords: []string{"cart", "shopping", "buy", "basket", "checkout"}},
	{Name: "IconTag", Keywords: []string{"tag", "label", "price", "sale", "discount"}},
	{Name: "IconGift", Keywords: []string{"gift", "present", "giveaway", "reward"}},
	{Name: "IconFire", Keywords: []string{"fire", "flame", "hot", "trending"}},
	{Name: "IconBolt", Keywords: []string{"bolt", "lightning", "fast", "energy", "flash"}},
	{Name: "IconSparkles", Keywords: []string{"sparkles", "magic", "shine", "new", "ai"}},
	{Name: "IconTrophy", Keywords: []string{"trophy", "win", "award", "champion", "prize"}},
	{Name: "IconRocket", Keywords: []string{"rocket", "launch", "startup", "fast"}},
	{Name: "IconEye", Keywords: []string{"eye", "view", "watch", "visibility"}},
	{Name: "IconThumbsUp", Keywords: []string{"thumbs", "up", "like", "approve"}},
	{Name: "IconMessageCircle", Keywords: []string{"message", "comment", "chat", "bubble"}},
	{Name: "IconShare", Keywords: []string{"share", "send", "forward", "repost"}},
	{Name: "IconDownload", Keywords: []string{"download", "save", "arrow"}},
	{Name: "IconLink", Keywords: []string{"link", "url", "chain", "connect"}},
	{Name: "IconQuote", Keywords: []string{"quote", "testimonial", "citation"}},
	{Name: "IconSun", Keywords: []string{"sun", "day", "light", "weather"}},
	{Name: "IconMoon", Keywords: []string{"moon", "night", "dark", "sleep"}},
	{Name: "IconCloud", Keywords: []string{"cloud", "weather", "storage"}},
	{Name: "IconShield", Keywords: []string{"shield", "secure", "protect", "safety"}},
	{Name: "IconLock", Keywords: []string{"lock", "secure", "private", "password"}},
	{Name: "IconWifi", Keywords: []string{"wifi", "wireless", "signal", "connection"}},
	{Name: "IconBattery", Keywords: []string{"battery", "power", "charge"}},
	{Name: "IconTrendingUp", Keywords: []string{"trending", "up", "growth", "chart", "stats"}},
	{Name: "IconBarChart", Keywords: []string{"bar", "chart", "graph", "analytics", "data"}},
}
