package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundvault/soundvault/internal/apperr"
	"github.com/soundvault/soundvault/internal/lib/period"
	"github.com/soundvault/soundvault/internal/models"
)

func TestStorage_Registration(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	t.Run("register consumer", func(t *testing.T) {
		id, err := storage.RegisterConsumer(ctx, models.User{
			Username:     "consumer1",
			PasswordHash: "hash",
			PasswordSalt: "salt",
			Email:        "consumer1@example.com",
		}, models.Consumer{
			Birthday:    time.Date(1999, 5, 12, 0, 0, 0, 0, time.UTC),
			DisplayName: "Consumer One",
		})
		require.NoError(t, err)
		assert.Greater(t, id, int64(0))

		role, err := storage.ResolveRole(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RoleConsumer, role)
	})

	t.Run("duplicate username rolls back both rows", func(t *testing.T) {
		usersBefore := factory.CountRows(t, "users")
		consumersBefore := factory.CountRows(t, "consumers")

		_, err := storage.RegisterConsumer(ctx, models.User{
			Username:     "consumer1",
			PasswordHash: "hash",
			PasswordSalt: "salt",
			Email:        "other@example.com",
		}, models.Consumer{
			Birthday:    time.Date(1999, 5, 12, 0, 0, 0, 0, time.UTC),
			DisplayName: "Imposter",
		})
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "username or email already in use")

		// Ни пользователь, ни ролевая запись не должны появиться.
		assert.Equal(t, usersBefore, factory.CountRows(t, "users"))
		assert.Equal(t, consumersBefore, factory.CountRows(t, "consumers"))
	})

	t.Run("register artist with missing publisher", func(t *testing.T) {
		factory.CreateAdministrator(t, "admin1")
		adminID := factory.CreateAdministrator(t, "admin2")
		usersBefore := factory.CountRows(t, "users")

		_, err := storage.RegisterArtist(ctx, models.User{
			Username:     "artist1",
			PasswordHash: "hash",
			PasswordSalt: "salt",
			Email:        "artist1@example.com",
		}, models.Artist{
			StageName:   "MC Test",
			PublisherID: 9999,
			AdminID:     adminID,
		})
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "no publisher found with ID 9999")
		assert.Equal(t, usersBefore, factory.CountRows(t, "users"))
	})

	t.Run("register artist", func(t *testing.T) {
		adminID := factory.CreateAdministrator(t, "admin3")
		publisherID := factory.CreatePublisher(t, "label1")

		id, err := storage.RegisterArtist(ctx, models.User{
			Username:     "artist2",
			PasswordHash: "hash",
			PasswordSalt: "salt",
			Email:        "artist2@example.com",
		}, models.Artist{
			StageName:   "MC Test",
			PublisherID: publisherID,
			AdminID:     adminID,
		})
		require.NoError(t, err)

		role, err := storage.ResolveRole(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, models.RoleArtist, role)
	})

	t.Run("find credentials", func(t *testing.T) {
		creds, err := storage.FindCredentials(ctx, "consumer1")
		require.NoError(t, err)
		assert.Equal(t, "hash", creds.PasswordHash)
		assert.Equal(t, "salt", creds.PasswordSalt)
		assert.False(t, creds.Banned)

		// Поиск работает и по почте.
		byEmail, err := storage.FindCredentials(ctx, "consumer1@example.com")
		require.NoError(t, err)
		assert.Equal(t, creds.UserID, byEmail.UserID)
	})

	t.Run("find credentials of unknown user", func(t *testing.T) {
		_, err := storage.FindCredentials(ctx, "ghost")
		require.Error(t, err)
		assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	})

	t.Run("record login", func(t *testing.T) {
		creds, err := storage.FindCredentials(ctx, "consumer1")
		require.NoError(t, err)

		require.NoError(t, storage.RecordLogin(ctx, creds.UserID, "10.0.0.1"))
		assert.Equal(t, 1, factory.CountRows(t, "logins"))
	})
}

func TestStorage_ResolveRole(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	adminID := factory.CreateAdministrator(t, "admin")
	consumerID := factory.CreateConsumer(t, "consumer")
	premiumID := factory.CreateConsumer(t, "premium")
	bannedID := factory.CreateConsumer(t, "troll")

	now := time.Now()
	factory.CreateSubscription(t, premiumID, now, now.AddDate(0, 1, 0))

	_, err := storage.CreateBan(ctx, bannedID, adminID, "spam", nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		userID int64
		want   models.Role
	}{
		{"administrator", adminID, models.RoleAdministrator},
		{"regular consumer", consumerID, models.RoleConsumer},
		{"consumer with active subscription", premiumID, models.RolePremiumConsumer},
		{"ban overrides any role", bannedID, models.RoleBanned},
		{"unknown user", 9999, models.RoleUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := storage.ResolveRole(ctx, tt.userID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, role)
		})
	}

	t.Run("closed ban restores the role", func(t *testing.T) {
		require.NoError(t, storage.CloseBan(ctx, bannedID))

		role, err := storage.ResolveRole(ctx, bannedID)
		require.NoError(t, err)
		assert.Equal(t, models.RoleConsumer, role)
	})
}

func TestStorage_RegisterSubscription(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	adminID := factory.CreateAdministrator(t, "admin")

	t.Run("payment drains cards in caller order", func(t *testing.T) {
		consumerID := factory.CreateConsumer(t, "payer1")
		first := factory.CreateCard(t, "1111111111111111", 15, adminID)
		second := factory.CreateCard(t, "2222222222222222", 10, adminID)

		receipt, err := storage.RegisterSubscription(ctx, consumerID, false, period.Quarter,
			[]string{"1111111111111111", "2222222222222222"})
		require.NoError(t, err)
		assert.Greater(t, receipt.SubscriptionID, int64(0))
		assert.False(t, receipt.Extended)

		// Квартал стоит 21: первая карта опустошается, со второй уходит остаток.
		assert.Equal(t, 0, factory.CardCredit(t, first))
		assert.Equal(t, 4, factory.CardCredit(t, second))

		var start, end time.Time
		err = storage.DB.QueryRow(`SELECT start_time, end_time FROM subscriptions WHERE id = $1`,
			receipt.SubscriptionID).Scan(&start, &end)
		require.NoError(t, err)
		assert.WithinDuration(t, start.AddDate(0, 3, 0), end, time.Second)
	})

	t.Run("shortfall rolls back subscription and payments", func(t *testing.T) {
		consumerID := factory.CreateConsumer(t, "payer2")
		first := factory.CreateCard(t, "3333333333333333", 5, adminID)
		second := factory.CreateCard(t, "4444444444444444", 3, adminID)
		subscriptionsBefore := factory.CountRows(t, "subscriptions")
		paymentsBefore := factory.CountRows(t, "card_payments")

		_, err := storage.RegisterSubscription(ctx, consumerID, false, period.Quarter,
			[]string{"3333333333333333", "4444444444444444"})
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "missing 13.00 in the prepaid cards provided to pay 21.00 for quarter subscription")

		// Откат полный: остатки карт и таблицы не изменились.
		assert.Equal(t, 5, factory.CardCredit(t, first))
		assert.Equal(t, 3, factory.CardCredit(t, second))
		assert.Equal(t, subscriptionsBefore, factory.CountRows(t, "subscriptions"))
		assert.Equal(t, paymentsBefore, factory.CountRows(t, "card_payments"))
	})

	t.Run("unknown card aborts the payment", func(t *testing.T) {
		consumerID := factory.CreateConsumer(t, "payer3")
		factory.CreateCard(t, "5555555555555555", 50, adminID)

		_, err := storage.RegisterSubscription(ctx, consumerID, false, period.Month,
			[]string{"5555555555555555", "0000000000000000"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no card was found with one of the numbers in the card list")
	})

	t.Run("duplicate card in the list aborts the payment", func(t *testing.T) {
		consumerID := factory.CreateConsumer(t, "payer4")
		factory.CreateCard(t, "6666666666666666", 50, adminID)

		_, err := storage.RegisterSubscription(ctx, consumerID, false, period.Month,
			[]string{"6666666666666666", "6666666666666666"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "there is a duplicate entry")
	})

	t.Run("premium consumer extends from the current end", func(t *testing.T) {
		consumerID := factory.CreateConsumer(t, "payer5")
		currentEnd := time.Now().Add(10 * 24 * time.Hour).Truncate(time.Second)
		factory.CreateSubscription(t, consumerID, time.Now(), currentEnd)
		factory.CreateCard(t, "7777777777777777", 15, adminID)

		receipt, err := storage.RegisterSubscription(ctx, consumerID, true, period.Month,
			[]string{"7777777777777777"})
		require.NoError(t, err)
		assert.True(t, receipt.Extended)

		var start time.Time
		err = storage.DB.QueryRow(`SELECT start_time FROM subscriptions WHERE id = $1`,
			receipt.SubscriptionID).Scan(&start)
		require.NoError(t, err)
		assert.WithinDuration(t, currentEnd, start, time.Second)
	})

	t.Run("premium flag without active subscription", func(t *testing.T) {
		consumerID := factory.CreateConsumer(t, "payer6")
		factory.CreateCard(t, "8888888888888888", 15, adminID)

		_, err := storage.RegisterSubscription(ctx, consumerID, true, period.Month,
			[]string{"8888888888888888"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "premium consumer has no active subscription")
	})

	t.Run("list active subscriptions", func(t *testing.T) {
		consumerID := factory.CreateConsumer(t, "payer7")
		now := time.Now()
		factory.CreateSubscription(t, consumerID, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0))
		factory.CreateSubscription(t, consumerID, now, now.AddDate(0, 1, 0))
		factory.CreateSubscription(t, consumerID, now.AddDate(0, 1, 0), now.AddDate(0, 2, 0))

		subs, err := storage.ListActiveSubscriptions(ctx, consumerID)
		require.NoError(t, err)
		// Истекшая подписка не попадает в список, сортировка от поздней к ранней.
		require.Len(t, subs, 2)
		assert.True(t, subs[0].EndTime.After(subs[1].EndTime))
	})
}

func TestStorage_Collections(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	adminID := factory.CreateAdministrator(t, "admin")
	publisherID := factory.CreatePublisher(t, "label")
	artistID := factory.CreateArtist(t, "artist", publisherID, adminID)
	consumerID := factory.CreateConsumer(t, "listener")

	songA := factory.CreateSong(t, artistID, "9790000000001", "Song A", "rock")
	songB := factory.CreateSong(t, artistID, "9790000000002", "Song B", "rock")
	songC := factory.CreateSong(t, artistID, "9790000000003", "Song C", "jazz")

	t.Run("playlist keeps caller order", func(t *testing.T) {
		playlistID, err := storage.CreatePlaylist(ctx, models.Playlist{
			Name:       "Mixtape",
			Private:    false,
			ConsumerID: consumerID,
		}, []int64{songC, songA, songB})
		require.NoError(t, err)

		info, err := storage.GetPlaylistInfo(ctx, playlistID, consumerID, false)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, []string{"Song C", "Song A", "Song B"}, info.Songs)
	})

	t.Run("private playlist hidden from others", func(t *testing.T) {
		otherID := factory.CreateConsumer(t, "stranger")
		playlistID, err := storage.CreatePlaylist(ctx, models.Playlist{
			Name:       "Secret",
			Private:    true,
			ConsumerID: consumerID,
		}, []int64{songA})
		require.NoError(t, err)

		// Чужой премиум-просмотр не открывает приватный плейлист.
		info, err := storage.GetPlaylistInfo(ctx, playlistID, otherID, true)
		require.NoError(t, err)
		assert.Nil(t, info)

		// Премиум-владелец видит свой приватный плейлист.
		info, err = storage.GetPlaylistInfo(ctx, playlistID, consumerID, true)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.True(t, info.Private)
	})

	t.Run("playlist with unknown song rolls back", func(t *testing.T) {
		playlistsBefore := factory.CountRows(t, "playlists")

		_, err := storage.CreatePlaylist(ctx, models.Playlist{
			Name:       "Broken",
			ConsumerID: consumerID,
		}, []int64{songA, 9999})
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		assert.Equal(t, playlistsBefore, factory.CountRows(t, "playlists"))
	})

	t.Run("delete playlist of another owner", func(t *testing.T) {
		otherID := factory.CreateConsumer(t, "stranger2")
		playlistID, err := storage.CreatePlaylist(ctx, models.Playlist{
			Name:       "Mine",
			ConsumerID: consumerID,
		}, []int64{songA})
		require.NoError(t, err)

		err = storage.DeletePlaylist(ctx, playlistID, otherID)
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

		require.NoError(t, storage.DeletePlaylist(ctx, playlistID, consumerID))
	})

	t.Run("album positions existing songs before new ones", func(t *testing.T) {
		explicitSong := models.Song{
			ISMN:        "9790000000004",
			Title:       "Song D",
			Genre:       "rock",
			Duration:    200,
			ReleaseDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Explicit:    true,
			ArtistID:    artistID,
		}

		albumID, err := storage.CreateAlbum(ctx, models.Album{
			Title:       "First Album",
			ReleaseDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			ArtistID:    artistID,
		}, []int64{songB, songA}, []models.Song{explicitSong})
		require.NoError(t, err)

		rows, err := storage.DB.Query(
			`SELECT songs.title FROM album_orders
			 JOIN songs ON album_orders.songs_id = songs.id
			 WHERE albums_id = $1 ORDER BY ordinality ASC`, albumID)
		require.NoError(t, err)
		defer func() {
			_ = rows.Close()
		}()

		var titles []string
		for rows.Next() {
			var title string
			require.NoError(t, rows.Scan(&title))
			titles = append(titles, title)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []string{"Song B", "Song A", "Song D"}, titles)
	})

	t.Run("duplicate album title rolls back new songs", func(t *testing.T) {
		songsBefore := factory.CountRows(t, "songs")

		_, err := storage.CreateAlbum(ctx, models.Album{
			Title:       "First Album",
			ReleaseDate: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
			ArtistID:    artistID,
		}, []int64{songA, songB}, nil)
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
		assert.Equal(t, songsBefore, factory.CountRows(t, "songs"))
	})
}

func TestStorage_Catalog(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	adminID := factory.CreateAdministrator(t, "admin")
	publisherID := factory.CreatePublisher(t, "label")
	artistID := factory.CreateArtist(t, "lead", publisherID, adminID)
	collabID := factory.CreateArtist(t, "feat", publisherID, adminID)

	t.Run("create song with collaborations", func(t *testing.T) {
		songID, err := storage.CreateSong(ctx, models.Song{
			ISMN:        "9790000000010",
			Title:       "Duet",
			Genre:       "pop",
			Duration:    125,
			ReleaseDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Explicit:    false,
			ArtistID:    artistID,
		}, []int64{collabID})
		require.NoError(t, err)

		info, err := storage.GetSongInfo(ctx, songID)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "Duet", info.Title)
		assert.Equal(t, "lead", info.Artist)
		assert.Equal(t, []string{"feat"}, info.Collaborators)
		// Длительность отдается в формате m:ss.
		assert.Equal(t, "2:05", info.Duration)
	})

	t.Run("duplicate ISMN is a conflict", func(t *testing.T) {
		_, err := storage.CreateSong(ctx, models.Song{
			ISMN:        "9790000000010",
			Title:       "Another",
			Genre:       "pop",
			Duration:    125,
			ReleaseDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			ArtistID:    artistID,
		}, nil)
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
	})

	t.Run("unknown collaborator is invalid input", func(t *testing.T) {
		_, err := storage.CreateSong(ctx, models.Song{
			ISMN:        "9790000000011",
			Title:       "Solo",
			Genre:       "pop",
			Duration:    125,
			ReleaseDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			ArtistID:    artistID,
		}, []int64{9999})
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
	})

	t.Run("search songs by keyword", func(t *testing.T) {
		found, err := storage.SearchSongs(ctx, "due")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Duet", found[0].Title)
		assert.Equal(t, "lead", found[0].Artist)
	})

	t.Run("song info of a missing song is nil", func(t *testing.T) {
		info, err := storage.GetSongInfo(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, info)
	})

	t.Run("artist info collects songs and features", func(t *testing.T) {
		info, err := storage.GetArtistInfo(ctx, collabID)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "feat", info.StageName)
		assert.Empty(t, info.ReleasedSongs)
		assert.Equal(t, []string{"Duet"}, info.FeaturedSongs)
	})
}

func TestStorage_Comments(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	adminID := factory.CreateAdministrator(t, "admin")
	publisherID := factory.CreatePublisher(t, "label")
	artistID := factory.CreateArtist(t, "artist", publisherID, adminID)
	consumerID := factory.CreateConsumer(t, "listener")
	otherID := factory.CreateConsumer(t, "other")

	songID := factory.CreateSong(t, artistID, "9790000000001", "Song A", "rock")
	otherSongID := factory.CreateSong(t, artistID, "9790000000002", "Song B", "rock")

	threadID, err := storage.CreateComment(ctx, songID, consumerID, "great track", nil)
	require.NoError(t, err)

	t.Run("reply joins the thread", func(t *testing.T) {
		replyID, err := storage.CreateComment(ctx, songID, otherID, "agreed", &threadID)
		require.NoError(t, err)

		info, err := storage.GetCommentInfo(ctx, threadID)
		require.NoError(t, err)
		require.NotNil(t, info)
		assert.Equal(t, "great track", info.Content)
		assert.Equal(t, "listener", info.Author)
		assert.Equal(t, []int64{replyID}, info.Replies)
	})

	t.Run("reply to a comment of another song is rejected", func(t *testing.T) {
		_, err := storage.CreateComment(ctx, otherSongID, otherID, "wrong thread", &threadID)
		require.Error(t, err)
		assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "no parent comment")
	})

	t.Run("top level comments exclude replies", func(t *testing.T) {
		ids, err := storage.ListTopLevelComments(ctx, songID)
		require.NoError(t, err)
		assert.Equal(t, []int64{threadID}, ids)
	})

	t.Run("consumer cannot delete a foreign thread", func(t *testing.T) {
		err := storage.DeleteCommentThread(ctx, threadID, &otherID)
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})

	t.Run("deleting the thread cascades to replies", func(t *testing.T) {
		require.NoError(t, storage.DeleteCommentThread(ctx, threadID, &consumerID))
		assert.Equal(t, 0, factory.CountRows(t, "comments"))
	})

	t.Run("administrator deletes any thread", func(t *testing.T) {
		id, err := storage.CreateComment(ctx, songID, consumerID, "to be moderated", nil)
		require.NoError(t, err)

		require.NoError(t, storage.DeleteCommentThread(ctx, id, nil))
	})
}

func TestStorage_Moderation(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	adminID := factory.CreateAdministrator(t, "admin")
	secondAdminID := factory.CreateAdministrator(t, "admin2")
	consumerID := factory.CreateConsumer(t, "troll")

	t.Run("duplicate card number is a conflict", func(t *testing.T) {
		_, err := storage.CreateCard(ctx, "1111111111111111", 15, adminID)
		require.NoError(t, err)

		_, err = storage.CreateCard(ctx, "1111111111111111", 25, adminID)
		require.Error(t, err)
		assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
		assert.Contains(t, err.Error(), "card with this number already exists")
	})

	t.Run("administrator cannot be banned", func(t *testing.T) {
		_, err := storage.CreateBan(ctx, secondAdminID, adminID, "power struggle", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "you cannot ban an administrator")
	})

	t.Run("second active ban is rejected", func(t *testing.T) {
		_, err := storage.CreateBan(ctx, consumerID, adminID, "spam", nil)
		require.NoError(t, err)

		_, err = storage.CreateBan(ctx, consumerID, adminID, "spam again", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already has an active ban until it is lifted manually")
	})

	t.Run("unban closes the ban and keeps history", func(t *testing.T) {
		require.NoError(t, storage.CloseBan(ctx, consumerID))
		assert.Equal(t, 1, factory.CountRows(t, "bans"))

		err := storage.CloseBan(ctx, consumerID)
		require.Error(t, err)
		assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	})
}

func TestStorage_GenreReport(t *testing.T) {
	storage, cleanup := setupTestDb(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	adminID := factory.CreateAdministrator(t, "admin")
	publisherID := factory.CreatePublisher(t, "label")
	artistID := factory.CreateArtist(t, "artist", publisherID, adminID)
	consumerID := factory.CreateConsumer(t, "listener")
	strangerID := factory.CreateConsumer(t, "stranger")

	rockID := factory.CreateSong(t, artistID, "9790000000001", "Rock Song", "rock")
	jazzID := factory.CreateSong(t, artistID, "9790000000002", "Jazz Song", "jazz")

	june := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	may := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	longAgo := time.Date(2022, 6, 10, 12, 0, 0, 0, time.UTC)

	factory.CreateStream(t, rockID, consumerID, june)
	factory.CreateStream(t, rockID, consumerID, june.Add(time.Hour))
	factory.CreateStream(t, jazzID, consumerID, june)
	factory.CreateStream(t, rockID, consumerID, may)
	// Слишком старое прослушивание и чужие прослушивания в отчет не входят.
	factory.CreateStream(t, rockID, consumerID, longAgo)
	factory.CreateStream(t, rockID, strangerID, june)

	report, err := storage.GenreReport(ctx, consumerID,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, report, 3)
	assert.Equal(t, models.GenrePlaybacks{YearMonth: "2024-06", Genre: "rock", Playbacks: 2}, report[0])
	assert.Equal(t, models.GenrePlaybacks{YearMonth: "2024-06", Genre: "jazz", Playbacks: 1}, report[1])
	assert.Equal(t, models.GenrePlaybacks{YearMonth: "2024-05", Genre: "rock", Playbacks: 1}, report[2])
}
