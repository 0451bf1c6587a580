package shopify

// ProductByIDQuery fetches one product with the fields the attribute
// extraction needs (vendor, product type, custom metafields).
const ProductByIDQuery = `
query getProduct($id: ID!) {
  product(id: $id) {
    id
    title
    vendor
    productType
    metafields(first: 50) {
      edges {
        node {
          namespace
          key
          value
        }
      }
    }
  }
}
`

// ProductsQuery pages through all products with the same per-product fields
// as ProductByIDQuery so bulk sync needs no second fetch per product.
const ProductsQuery = `
query getProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        vendor
        productType
        metafields(first: 50) {
          edges {
            node {
              namespace
              key
              value
            }
          }
        }
      }
    }
  }
}
`

// SmartCollectionsQuery pages through smart collections with their rule set,
// image and first-product preview image (image fallback chain).
const SmartCollectionsQuery = `
query getSmartCollections($first: Int!, $after: String) {
  collections(first: $first, after: $after, query: "collection_type:smart") {
    pageInfo {
      hasNextPage
      endCursor
    }
    edges {
      node {
        id
        title
        handle
        ruleSet {
          appliedDisjunctively
          rules {
            column
            relation
            condition
            conditionObject {
              ... on CollectionRuleMetafieldCondition {
                metafieldDefinition {
                  id
                }
              }
            }
          }
        }
        image {
          url
        }
        products(first: 1) {
          edges {
            node {
              featuredMedia {
                preview {
                  image {
                    url
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}
`

// CollectionByHandleQuery fetches a single collection by handle.
const CollectionByHandleQuery = `
query getCollectionByHandle($handle: String!) {
  collectionByHandle(handle: $handle) {
    id
    title
    handle
    ruleSet {
      appliedDisjunctively
      rules {
        column
        relation
        condition
        conditionObject {
          ... on CollectionRuleMetafieldCondition {
            metafieldDefinition {
              id
            }
          }
        }
      }
    }
    image {
      url
    }
  }
}
`

// MetafieldDefinitionsQuery fetches the product-domain metafield definitions
// used to map rule condition objects back to attribute names.
const MetafieldDefinitionsQuery = `
query getMetafieldDefinitions($first: Int!) {
  metafieldDefinitions(first: $first, ownerType: PRODUCT) {
    edges {
      node {
        id
        name
        key
      }
    }
  }
}
`
