package shopify

const moneyFields = `amount currencyCode`

const cartSummaryFields = `id checkoutUrl totalQuantity`

const userErrorFields = `userErrors { field message }`

const shopQuery = `query Shop { shop { name } }`

const productsQuery = `query Products($limit: Int!) {
  products(first: $limit, sortKey: UPDATED_AT, reverse: true) {
    edges {
      node {
        id
        handle
        title
        featuredImage { url altText }
        priceRange { minVariantPrice { ` + moneyFields + ` } }
      }
    }
  }
}`

const productQuery = `query Product($handle: String!) {
  product(handle: $handle) {
    id
    handle
    title
    descriptionHtml
    featuredImage { url altText }
    images(first: 8) { edges { node { url altText } } }
    options { name values }
    variants(first: 50) {
      edges {
        node {
          id
          title
          availableForSale
          quantityAvailable
          price { ` + moneyFields + ` }
          selectedOptions { name value }
          image { url altText }
        }
      }
    }
  }
}`

const cartQuery = `query Cart($id: ID!) {
  cart(id: $id) {
    ` + cartSummaryFields + `
    lines(first: 100) {
      edges {
        node {
          id
          quantity
          merchandise {
            ... on ProductVariant {
              id
              title
              price { ` + moneyFields + ` }
              image { url altText }
              product { title handle featuredImage { url altText } }
            }
          }
          cost {
            amountPerQuantity { ` + moneyFields + ` }
            totalAmount { ` + moneyFields + ` }
          }
        }
      }
    }
    cost {
      subtotalAmount { ` + moneyFields + ` }
      totalAmount { ` + moneyFields + ` }
    }
  }
}`

const cartCreateMutation = `mutation CartCreate($lines: [CartLineInput!]) {
  cartCreate(input: { lines: $lines }) {
    cart { ` + cartSummaryFields + ` }
    ` + userErrorFields + `
  }
}`

const cartLinesAddMutation = `mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart { ` + cartSummaryFields + ` }
    ` + userErrorFields + `
  }
}`

const cartLinesUpdateMutation = `mutation CartLinesUpdate($cartId: ID!, $lines: [CartLineUpdateInput!]!) {
  cartLinesUpdate(cartId: $cartId, lines: $lines) {
    cart { ` + cartSummaryFields + ` }
    ` + userErrorFields + `
  }
}`

const cartLinesRemoveMutation = `mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart { ` + cartSummaryFields + ` }
    ` + userErrorFields + `
  }
}`
