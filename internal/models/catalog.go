package models

import "time"

// Song — песня каталога. Title уникален в пределах исполнителя,
// ISMN уникален глобально.
type Song struct {
	ID          int64
	ISMN        string // 13-значный числовой идентификатор
	Title       string
	Genre       string
	Duration    int // Длительность в секундах, 1..3600
	ReleaseDate time.Time
	Explicit    bool
	ArtistID    int64
	PublisherID int64
}

// SongSummary — строка результата поиска песен.
type SongSummary struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

// SongInfo — развернутая карточка песни.
type SongInfo struct {
	Title         string   `json:"title"`
	Artist        string   `json:"artist"`
	Collaborators []string `json:"collaborators"`
	Albums        []string `json:"albums"`
	Genre         string   `json:"genre"`
	Duration      string   `json:"duration"` // в формате m:ss
	Explicit      bool     `json:"explicit"`
	ReleaseDate   string   `json:"release_date"`
}

// ArtistSummary — строка результата поиска исполнителей.
type ArtistSummary struct {
	ID        int64  `json:"artist_id"`
	StageName string `json:"stage_name"`
}

// ArtistInfo — карточка исполнителя с его песнями, фитами, альбомами
// и публичными плейлистами, в которые попали его песни.
type ArtistInfo struct {
	StageName     string             `json:"stage_name"`
	ReleasedSongs []string           `json:"released_songs"`
	FeaturedSongs []string           `json:"featured_songs"`
	Albums        []string           `json:"albums"`
	IsInPlaylists []PlaylistAuthored `json:"is_in_playlists"`
}

// PlaylistAuthored — имя публичного плейлиста и его автор.
type PlaylistAuthored struct {
	Name   string `json:"name"`
	Author string `json:"author"`
}

// Album — альбом исполнителя; порядок песен хранится отдельными
// строками с полем ordinality.
type Album struct {
	ID          int64
	Title       string
	ReleaseDate time.Time
	ArtistID    int64
}

// NewSongSpec — описание новой песни, создаваемой вместе с альбомом.
type NewSongSpec struct {
	ISMN        string `json:"ismn" validate:"required,len=13,numeric"`
	Title       string `json:"title" validate:"required,max=512"`
	Genre       string `json:"genre" validate:"required,max=512"`
	Duration    int    `json:"duration" validate:"required,min=1,max=3600"`
	ReleaseDate string `json:"release_date" validate:"required"`
	Explicit    *bool  `json:"explicit" validate:"required"`
}

// Playlist — плейлист потребителя; имя уникально в пределах владельца.
type Playlist struct {
	ID         int64
	Name       string
	Private    bool
	ConsumerID int64
}

// PlaylistSummary — строка результата поиска плейлистов.
type PlaylistSummary struct {
	ID      int64  `json:"playlist_id"`
	Name    string `json:"playlist_name"`
	Creator string `json:"creator"`
}

// PlaylistInfo — карточка плейлиста с песнями в сохранённом порядке.
type PlaylistInfo struct {
	Name    string   `json:"playlist_name"`
	Creator string   `json:"creator"`
	Private bool     `json:"private"`
	Songs   []string `json:"song_names"`
}

// Comment — комментарий к песне; ParentID == nil для начала треда.
type Comment struct {
	ID         int64
	Content    string
	PostTime   time.Time
	ParentID   *int64
	SongID     int64
	ConsumerID int64
}

// CommentInfo — карточка комментария с идентификаторами ответов.
type CommentInfo struct {
	Content  string    `json:"content"`
	PostTime time.Time `json:"post_time"`
	Author   string    `json:"author"`
	Replies  []int64   `json:"replies_comment_id"`
}

// Stream — событие прослушивания, журнал только на добавление.
type Stream struct {
	ID         int64
	SongID     int64
	ConsumerID int64
	StreamTime time.Time
}

// GenrePlaybacks — строка месячного отчёта прослушиваний.
type GenrePlaybacks struct {
	YearMonth string `json:"year_month"`
	Genre     string `json:"genre"`
	Playbacks int64  `json:"playbacks"`
}
