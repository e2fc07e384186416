// Command seed resets the database and loads a small deterministic demo data
// set: a handful of accounts, San Francisco locations, tagged posts, one
// follow edge and one favorite.
package main

import (
	"regexp"

	"github.com/vibecheck/vibecheck/model"
	"github.com/vibecheck/vibecheck/utils"
	"github.com/vibecheck/vibecheck/utils/dotenv"
	. "github.com/vibecheck/vibecheck/utils/log"
	"gorm.io/gorm"
)

type seedAccount struct {
	cognitoId string
	username  string
	email     string
	role      model.AccountRole
}

type seedLocation struct {
	name      string
	address   string
	longitude float64
	latitude  float64
}

type seedPost struct {
	authorEmail  string
	locationName string
	content      string
	mediaUrl     string
}

var seedAccounts = []seedAccount{
	{"cognito-user-01", "alice_explores", "alice@example.com", model.AccountRoleUser},
	{"cognito-user-02", "bob_foodie", "bob@example.com", model.AccountRoleUser},
	{"cognito-user-03", "charlie_vibes", "charlie@example.com", model.AccountRoleUser},
	{"cognito-owner-01", "sunny_cafe_owner", "owner@sunnycafe.com", model.AccountRoleOwner},
}

var seedLocations = []seedLocation{
	{"The Daily Grind", "123 Coffee Bean Blvd, San Francisco, CA 94102", -122.4194, 37.7749},
	{"Bytes & Brews Bistro", "456 Tech Terrace, San Francisco, CA 94105", -122.3949, 37.7941},
	{"Sunset Dumpling House", "789 Noodle Way, San Francisco, CA 94122", -122.4834, 37.7592},
	// Claimed by the owner account below.
	{"Sunny Cafe", "101 Sunshine Ave, San Francisco, CA 94107", -122.4065, 37.7857},
}

var seedTagNames = []string{
	"#GoodForDates", "#Quiet", "#LGBTQFriendly", "#WorkFriendly",
	"#LiveMusic", "#Accessible", "#PetFriendly", "#VeganOptions",
}

var seedPosts = []seedPost{
	{
		authorEmail:  "alice@example.com",
		locationName: "The Daily Grind",
		content:      "Absolutely love the quiet ambiance here. Perfect for getting work done. The espresso is top-notch! #WorkFriendly #Quiet",
		mediaUrl:     "https://placehold.co/600x400/A3B8A3/FFFFFF?text=Post+from+Alice",
	},
	{
		authorEmail:  "bob@example.com",
		locationName: "Sunset Dumpling House",
		content:      "These are the best soup dumplings in the city, hands down. A must-try. #VeganOptions",
	},
	{
		authorEmail:  "charlie_vibes@nowhere", // unknown author, skipped on purpose
		locationName: "Sunset Dumpling House",
		content:      "Skipped entry exercising the missing-author path.",
	},
	{
		authorEmail:  "charlie@example.com",
		locationName: "Sunny Cafe",
		content:      "Live jazz on Fridays and staff that remembers your order. #LiveMusic #GoodForDates",
	},
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	if err := db.Transaction(seed); err != nil {
		Log.Fatal("fail to seed database: ", err)
	}
	Log.Info("seeding finished successfully")
}

func seed(tx *gorm.DB) error {
	// Clear existing data, reverse of creation order to respect foreign keys.
	for _, table := range []string{"post_tags", "post_favorites", "follows", "official_responses", "posts", "locations", "tags", "accounts"} {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}

	accountsByEmail := map[string]*model.Account{}
	for _, a := range seedAccounts {
		account := model.Account{CognitoId: a.cognitoId, Username: a.username, Email: a.email, Role: a.role}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}
		accountsByEmail[a.email] = &account
	}

	tagsByName := map[string]*model.Tag{}
	for _, name := range seedTagNames {
		tag := model.Tag{TagName: name}
		if err := tx.Create(&tag).Error; err != nil {
			return err
		}
		tagsByName[name] = &tag
	}

	owner := accountsByEmail["owner@sunnycafe.com"]
	locationsByName := map[string]*model.Location{}
	for _, l := range seedLocations {
		location := model.Location{
			Name:        l.name,
			Address:     l.address,
			Coordinates: model.Point{Longitude: l.longitude, Latitude: l.latitude},
			Status:      model.LocationStatusUnverified,
		}
		if l.name == "Sunny Cafe" {
			location.ClaimedByOwnerID = &owner.Id
			location.Status = model.LocationStatusVerified
		}
		if err := tx.Create(&location).Error; err != nil {
			return err
		}
		locationsByName[l.name] = &location
	}

	var firstPost *model.Post
	for _, p := range seedPosts {
		author, authorOK := accountsByEmail[p.authorEmail]
		location, locationOK := locationsByName[p.locationName]
		if !authorOK || !locationOK {
			Log.Warn("skipping seed post with unknown author or location: ", p.locationName)
			continue
		}

		post := model.Post{Content: p.content, AuthorID: author.Id, LocationID: location.Id}
		if p.mediaUrl != "" {
			mediaUrl := p.mediaUrl
			post.MediaUrl = &mediaUrl
		}
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if firstPost == nil {
			firstPost = &post
		}

		// Tags mentioned as #hashtags in the content are linked to the post.
		for _, mention := range hashtagPattern.FindAllString(p.content, -1) {
			tag, ok := tagsByName[mention]
			if !ok {
				continue
			}
			if err := tx.Create(&model.PostTag{PostID: post.Id, TagID: tag.Id}).Error; err != nil {
				return err
			}
		}
	}

	// A follow edge and a favorite so the social graph tables are populated.
	alice := accountsByEmail["alice@example.com"]
	bob := accountsByEmail["bob@example.com"]
	if err := tx.Create(&model.Follow{FollowerID: bob.Id, FollowedID: alice.Id}).Error; err != nil {
		return err
	}
	if firstPost != nil {
		if err := tx.Create(&model.PostFavorite{UserID: bob.Id, PostID: firstPost.Id}).Error; err != nil {
			return err
		}
	}

	return nil
}
