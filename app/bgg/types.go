package bgg

// XML API responses. Field tags name the element or attribute after ParseXML
// has merged attributes into their element.

const (
	LinkTypeExpansion = "boardgameexpansion"
	NameTypePrimary   = "primary"
)

type ThingResponse struct {
	Items ThingItems `xml:"items"`
}

type ThingItems struct {
	Item []ThingItem `xml:"item"`
}

type ThingItem struct {
	ID          string      `xml:"id"`
	Type        string      `xml:"type"`
	Image       string      `xml:"image"`
	Thumbnail   string      `xml:"thumbnail"`
	Description string      `xml:"description"`
	Name        []ThingName `xml:"name"`
	Link        []ThingLink `xml:"link"`
}

type ThingName struct {
	Type      string `xml:"type"`
	SortIndex string `xml:"sortindex"`
	Value     string `xml:"value"`
}

type ThingLink struct {
	Type    string `xml:"type"`
	ID      string `xml:"id"`
	Value   string `xml:"value"`
	Inbound string `xml:"inbound"`
}

// PrimaryName returns the primary name of the item, or the first name when none is marked primary.
func (i ThingItem) PrimaryName() string {
	for _, name := range i.Name {
		if name.Type == NameTypePrimary {
			return name.Value
		}
	}
	if len(i.Name) > 0 {
		return i.Name[0].Value
	}
	return ""
}

// ExpansionFamily returns the ids of inbound expansion links, in source order.
func (i ThingItem) ExpansionFamily() []string {
	ids := make([]string, 0, len(i.Link))
	for _, link := range i.Link {
		if link.Type == LinkTypeExpansion && link.Inbound == "true" {
			ids = append(ids, link.ID)
		}
	}
	return ids
}

type UserResponse struct {
	User User `xml:"user"`
}

type User struct {
	ID         string     `xml:"id"`
	Name       string     `xml:"name"`
	FirstName  NamedValue `xml:"firstname"`
	LastName   NamedValue `xml:"lastname"`
	AvatarLink NamedValue `xml:"avatarlink"`
}

type NamedValue struct {
	Value string `xml:"value"`
}

type ThreadResponse struct {
	Thread Thread `xml:"thread"`
}

type Thread struct {
	ID          string         `xml:"id"`
	Subject     string         `xml:"subject"`
	NumArticles string         `xml:"numarticles"`
	Link        string         `xml:"link"`
	Articles    ThreadArticles `xml:"articles"`
}

type ThreadArticles struct {
	Article []ThreadArticle `xml:"article"`
}

type ThreadArticle struct {
	ID       string `xml:"id"`
	Username string `xml:"username"`
	Link     string `xml:"link"`
	PostDate string `xml:"postdate"`
	EditDate string `xml:"editdate"`
	NumEdits string `xml:"numedits"`
	Subject  string `xml:"subject"`
	Body     string `xml:"body"`
}

type GeeklistResponse struct {
	Geeklist Geeklist `xml:"geeklist"`
}

type Geeklist struct {
	ID          string         `xml:"id"`
	Username    string         `xml:"username"`
	Title       string         `xml:"title"`
	Description string         `xml:"description"`
	PostDate    string         `xml:"postdate"`
	EditDate    string         `xml:"editdate"`
	NumItems    string         `xml:"numitems"`
	Item        []GeeklistItem `xml:"item"`
}

type GeeklistItem struct {
	ID         string `xml:"id"`
	ListID     string `xml:"listid"`
	ObjectType string `xml:"objecttype"`
	Subtype    string `xml:"subtype"`
	ObjectID   string `xml:"objectid"`
	ObjectName string `xml:"objectname"`
	Username   string `xml:"username"`
	PostDate   string `xml:"postdate"`
	EditDate   string `xml:"editdate"`
	Thumbs     string `xml:"thumbs"`
	ImageID    string `xml:"imageid"`
	Body       string `xml:"body"`
}

// JSON API responses.

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type Pagination struct {
	PerPage int `json:"perPage"`
	Total   int `json:"total"`
}

type ListItem struct {
	Type     string         `json:"type"`
	ID       string         `json:"id"`
	ListID   string         `json:"listid"`
	Item     ListItemObject `json:"item"`
	PostDate string         `json:"postdate"`
	EditDate string         `json:"editdate"`
	Body     string         `json:"body"`
	Author   int64          `json:"author"`
	Href     string         `json:"href"`
}

type ListItemObject struct {
	Type string `json:"type"`
	ID   string `json:"id"`
	Name string `json:"name"`
	Href string `json:"href"`
}
