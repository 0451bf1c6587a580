package shopify

// CollectionCreateMutation creates a smart collection from a rule set.
const CollectionCreateMutation = `
mutation collectionCreate($input: CollectionInput!) {
  collectionCreate(input: $input) {
    collection {
      id
      title
      handle
    }
    userErrors {
      field
      message
    }
  }
}
`

// CollectionDeleteMutation deletes a collection by ID.
const CollectionDeleteMutation = `
mutation collectionDelete($input: CollectionDeleteInput!) {
  collectionDelete(input: $input) {
    deletedCollectionId
    userErrors {
      field
      message
    }
  }
}
`

// WebhookSubscriptionCreateMutation registers a webhook for a topic.
const WebhookSubscriptionCreateMutation = `
mutation webhookSubscriptionCreate($topic: WebhookSubscriptionTopic!, $webhookSubscription: WebhookSubscriptionInput!) {
  webhookSubscriptionCreate(topic: $topic, webhookSubscription: $webhookSubscription) {
    webhookSubscription {
      id
    }
    userErrors {
      field
      message
    }
  }
}
`

// CollectionInput is the input for collectionCreate.
type CollectionInput struct {
	Title   string           `json:"title"`
	Handle  *string          `json:"handle,omitempty"`
	RuleSet *RuleSetInput    `json:"ruleSet,omitempty"`
	Image   *CollectionImage `json:"image,omitempty"`
}

// RuleSetInput holds the rules and the match mode. The sync always requests
// conjunctive matching (appliedDisjunctively = false, all rules must match).
type RuleSetInput struct {
	AppliedDisjunctively bool        `json:"appliedDisjunctively"`
	Rules                []RuleInput `json:"rules"`
}

// RuleInput is one collection rule in API shape (uppercase tokens).
type RuleInput struct {
	Column            string `json:"column"`
	Relation          string `json:"relation"`
	Condition         string `json:"condition"`
	ConditionObjectID string `json:"conditionObjectId,omitempty"`
}

// CollectionImage carries a collection image URL.
type CollectionImage struct {
	URL string `json:"src"`
}

// CollectionDeleteInput is the input for collectionDelete.
type CollectionDeleteInput struct {
	ID string `json:"id"`
}

// WebhookSubscriptionInput is the input for webhookSubscriptionCreate.
type WebhookSubscriptionInput struct {
	CallbackURL string `json:"callbackUrl"`
	Format      string `json:"format"`
}
