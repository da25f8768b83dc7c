package cbl

// steamUserQuery asks for the profile plus two independently ordered ban
// collections, split server side on the expired flag.
const steamUserQuery = `
query GetSteamUser($id: String!) {
  steamUser(id: $id) {
    id
    name
    avatarFull
    reputationPoints
    riskRating
    reputationRank
    activeBans: bans(orderBy: "created", orderDirection: DESC, expired: false) {
      edges {
        node {
          id
          created
          expires
          reason
          banList {
            name
            organisation {
              name
              discord
            }
          }
        }
      }
    }
    expiredBans: bans(orderBy: "created", orderDirection: DESC, expired: true) {
      edges {
        node {
          id
          created
          expires
          reason
          banList {
            name
            organisation {
              name
              discord
            }
          }
        }
      }
    }
  }
}
`
