package renderer

// Blinn-Phong lighting shared by the lit and billboard fragment stages,
// following the roughness/fresnel material model the constants are built for.
const litVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aTexCoord;

uniform mat4 uWorld;
uniform mat4 uViewProj;
uniform mat4 uTexTransform;
uniform mat4 uMatTransform;

out vec3 vWorldPos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
    vec4 worldPos = uWorld * vec4(aPos, 1.0);
    vWorldPos = worldPos.xyz;

    // Non-uniform scale is not used in this scene, so the world matrix
    // doubles as the normal matrix.
    vNormal = mat3(uWorld) * aNormal;

    vec4 tex = uMatTransform * uTexTransform * vec4(aTexCoord, 0.0, 1.0);
    vTexCoord = tex.xy;

    gl_Position = uViewProj * worldPos;
}
`

const litFragmentShader = `
#version 410 core

#define MAX_LIGHTS 16

struct Light {
    vec3 Strength;
    float FalloffStart;
    vec3 Direction;
    float FalloffEnd;
    vec3 Position;
    float SpotPower;
};

in vec3 vWorldPos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform sampler2D uDiffuseMap;
uniform vec4 uDiffuseAlbedo;
uniform vec3 uFresnelR0;
uniform float uRoughness;

uniform vec3 uEyePos;
uniform vec4 uAmbientLight;
uniform int uNumDirLights;
uniform int uNumPointLights;
uniform Light uLights[MAX_LIGHTS];

uniform vec4 uFogColor;
uniform float uFogStart;
uniform float uFogRange;

out vec4 FragColor;

float calcAttenuation(float d, float falloffStart, float falloffEnd) {
    return clamp((falloffEnd - d) / (falloffEnd - falloffStart), 0.0, 1.0);
}

vec3 schlickFresnel(vec3 r0, vec3 normal, vec3 lightVec) {
    float cosine = clamp(dot(normal, lightVec), 0.0, 1.0);
    float f0 = 1.0 - cosine;
    return r0 + (1.0 - r0) * (f0 * f0 * f0 * f0 * f0);
}

vec3 blinnPhong(vec3 strength, vec3 lightVec, vec3 normal, vec3 toEye, vec4 albedo) {
    float shininess = (1.0 - uRoughness) * 256.0;
    vec3 halfVec = normalize(toEye + lightVec);

    float roughnessFactor = (shininess + 8.0) / 8.0 *
        pow(max(dot(halfVec, normal), 0.0), shininess);
    vec3 fresnelFactor = schlickFresnel(uFresnelR0, halfVec, lightVec);

    vec3 specAlbedo = fresnelFactor * roughnessFactor;
    // Scale down for LDR output.
    specAlbedo = specAlbedo / (specAlbedo + 1.0);

    return (albedo.rgb + specAlbedo) * strength;
}

void main() {
    vec4 albedo = texture(uDiffuseMap, vTexCoord) * uDiffuseAlbedo;

    vec3 normal = normalize(vNormal);
    vec3 toEyeVec = uEyePos - vWorldPos;
    float distToEye = length(toEyeVec);
    vec3 toEye = toEyeVec / distToEye;

    vec3 result = uAmbientLight.rgb * albedo.rgb;

    for (int i = 0; i < uNumDirLights; ++i) {
        vec3 lightVec = -uLights[i].Direction;
        float ndotl = max(dot(lightVec, normal), 0.0);
        vec3 strength = uLights[i].Strength * ndotl;
        result += blinnPhong(strength, lightVec, normal, toEye, albedo);
    }

    for (int i = uNumDirLights; i < uNumDirLights + uNumPointLights; ++i) {
        vec3 lightVec = uLights[i].Position - vWorldPos;
        float d = length(lightVec);
        if (d > uLights[i].FalloffEnd)
            continue;
        lightVec /= d;

        float ndotl = max(dot(lightVec, normal), 0.0);
        vec3 strength = uLights[i].Strength * ndotl *
            calcAttenuation(d, uLights[i].FalloffStart, uLights[i].FalloffEnd);
        result += blinnPhong(strength, lightVec, normal, toEye, albedo);
    }

    float fogAmount = clamp((distToEye - uFogStart) / uFogRange, 0.0, 1.0);
    result = mix(result, uFogColor.rgb, fogAmount);

    FragColor = vec4(result, albedo.a);
}
`

const treeVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aSize;

out VS_OUT {
    vec2 size;
} vs_out;

void main() {
    // Pass the world position straight through; the geometry shader builds
    // the quad.
    gl_Position = vec4(aPos, 1.0);
    vs_out.size = aSize;
}
`

const treeGeometryShader = `
#version 410 core

layout (points) in;
layout (triangle_strip, max_vertices = 4) out;

in VS_OUT {
    vec2 size;
} gs_in[];

uniform mat4 uViewProj;
uniform vec3 uEyePos;

out vec2 gTexCoord;

void main() {
    vec3 center = gl_in[0].gl_Position.xyz;

    // Face the camera, but stay upright.
    vec3 up = vec3(0.0, 1.0, 0.0);
    vec3 look = uEyePos - center;
    look.y = 0.0;
    look = normalize(look);
    vec3 right = cross(up, look);

    float halfW = 0.5 * gs_in[0].size.x;
    float halfH = 0.5 * gs_in[0].size.y;

    vec3 corners[4];
    corners[0] = center + halfW * right - halfH * up;
    corners[1] = center + halfW * right + halfH * up;
    corners[2] = center - halfW * right - halfH * up;
    corners[3] = center - halfW * right + halfH * up;

    vec2 uvs[4] = vec2[4](vec2(0.0, 1.0), vec2(0.0, 0.0), vec2(1.0, 1.0), vec2(1.0, 0.0));

    for (int i = 0; i < 4; ++i) {
        gl_Position = uViewProj * vec4(corners[i], 1.0);
        gTexCoord = uvs[i];
        EmitVertex();
    }
    EndPrimitive();
}
`

const treeFragmentShader = `
#version 410 core

in vec2 gTexCoord;

uniform sampler2D uDiffuseMap;
uniform vec4 uAmbientLight;

out vec4 FragColor;

void main() {
    vec4 color = texture(uDiffuseMap, gTexCoord);

    // Alpha test, so leaves do not need sorted blending.
    if (color.a < 0.1)
        discard;

    FragColor = vec4(color.rgb * (uAmbientLight.rgb + 0.65), color.a);
}
`
